package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mudgalz/foodie-be/internal/auth"
	"github.com/mudgalz/foodie-be/internal/domain"
	"github.com/mudgalz/foodie-be/internal/imagestore"
	"github.com/mudgalz/foodie-be/internal/payment"
	"github.com/mudgalz/foodie-be/internal/service"
)

type Handler struct {
	Users       service.UserServiceInterface
	Restaurants service.RestaurantServiceInterface
	Orders      service.OrderServiceInterface
	Tokens      auth.TokenVerifier
	Webhooks    payment.WebhookVerifier
	Log         *zap.SugaredLogger
}

func NewHandler(users service.UserServiceInterface, restaurants service.RestaurantServiceInterface, orders service.OrderServiceInterface, tokens auth.TokenVerifier, webhooks payment.WebhookVerifier, log *zap.SugaredLogger) *Handler {
	return &Handler{
		Users:       users,
		Restaurants: restaurants,
		Orders:      orders,
		Tokens:      tokens,
		Webhooks:    webhooks,
		Log:         log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/user/me", h.authenticated(h.createCurrentUser)).Methods("POST")
	r.HandleFunc("/api/user/me", h.withAccount(h.getCurrentUser)).Methods("GET")
	r.HandleFunc("/api/user/me", h.withAccount(h.updateCurrentUser)).Methods("PUT")

	r.HandleFunc("/api/my/restaurant", h.withAccount(h.createMyRestaurant)).Methods("POST")
	r.HandleFunc("/api/my/restaurant", h.withAccount(h.getMyRestaurant)).Methods("GET")
	r.HandleFunc("/api/my/restaurant", h.withAccount(h.updateMyRestaurant)).Methods("PUT")
	r.HandleFunc("/api/my/restaurant/qrcode", h.withAccount(h.getMyRestaurantQRCode)).Methods("GET")
	r.HandleFunc("/api/my/restaurant/orders", h.withAccount(h.getMyRestaurantOrders)).Methods("GET")
	r.HandleFunc("/api/my/restaurant/order/{orderId}/status", h.withAccount(h.updateOrderStatus)).Methods("PATCH")

	r.HandleFunc("/api/order/checkout/create-checkout-session", h.withAccount(h.createCheckoutSession)).Methods("POST")
	r.HandleFunc("/api/order/checkout/webhook", h.paymentWebhook).Methods("POST")
	r.HandleFunc("/api/order/mine", h.withAccount(h.getMyOrders)).Methods("GET")

	r.HandleFunc("/api/restaurants/search/{city}", h.searchRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}", h.getRestaurant).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "foodie-be",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createCurrentUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Auth0ID string `json:"auth0Id"`
		Email   string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Auth0ID == "" {
		writeError(w, http.StatusBadRequest, "auth0Id and email are required")
		return
	}
	if req.Auth0ID != subjectFrom(r.Context()) {
		writeError(w, http.StatusUnauthorized, "auth0Id does not match credential")
		return
	}

	user, created, err := h.Users.GetOrCreate(r.Context(), req.Auth0ID, req.Email)
	if err != nil {
		h.serverError(w, "create user", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, user)
}

func (h *Handler) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.serverError(w, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) updateCurrentUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		AddressLine string `json:"addressLine"`
		City        string `json:"city"`
		Zipcode     string `json:"zipcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Users.UpdateProfile(r.Context(), userIDFrom(r.Context()), req.Name, req.AddressLine, req.City, req.Zipcode)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.serverError(w, "update user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) createMyRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, image, imageType, err := parseRestaurantForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rest.UserID = userIDFrom(r.Context())

	if err := h.Restaurants.CreateForOwner(r.Context(), rest, image, imageType); err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantExists):
			writeError(w, http.StatusConflict, "User already has a restaurant")
		case errors.Is(err, imagestore.ErrUnsupportedType):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.serverError(w, "create restaurant", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) getMyRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Restaurants.GetForOwner(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			writeError(w, http.StatusNotFound, "User has no restaurant")
			return
		}
		h.serverError(w, "get restaurant", err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) updateMyRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, image, imageType, err := parseRestaurantForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rest.UserID = userIDFrom(r.Context())

	if err := h.Restaurants.ReplaceForOwner(r.Context(), rest, image, imageType); err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			writeError(w, http.StatusNotFound, "User has no restaurant")
		case errors.Is(err, imagestore.ErrUnsupportedType):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.serverError(w, "update restaurant", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) getMyRestaurantQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Restaurants.MenuQRCode(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			writeError(w, http.StatusNotFound, "User has no restaurant")
			return
		}
		h.serverError(w, "render qr code", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) getMyRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	page, err := h.Orders.ListRestaurantOrders(r.Context(), userIDFrom(r.Context()), pageParam(r))
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			writeError(w, http.StatusNotFound, "User has no restaurant")
			return
		}
		h.serverError(w, "list restaurant orders", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), orderID, userIDFrom(r.Context()), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid status value")
		case errors.Is(err, service.ErrNotOwner):
			writeError(w, http.StatusUnauthorized, "You don't own this restaurant")
		case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrRestaurantNotFound):
			writeError(w, http.StatusNotFound, "Order not found")
		default:
			h.serverError(w, "update order status", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.Orders.CreateCheckoutSession(r.Context(), userIDFrom(r.Context()), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			writeError(w, http.StatusNotFound, "Restaurant not found")
		case errors.Is(err, service.ErrMenuItemNotFound), errors.Is(err, service.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.serverError(w, "create checkout session", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// paymentWebhook is the payment provider's asynchronous callback. Signature
// verification happens before anything else; a failed check mutates nothing.
func (h *Handler) paymentWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<16))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unreadable payload")
		return
	}

	completed, err := h.Webhooks.VerifyEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Webhook error: "+err.Error())
		return
	}
	if completed == nil {
		// Authentic but not a completion event.
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	if err := h.Orders.HandleCheckoutCompleted(r.Context(), completed.OrderID, completed.AmountTotal); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.serverError(w, "handle checkout completion", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *Handler) getMyOrders(w http.ResponseWriter, r *http.Request) {
	page, err := h.Orders.ListCustomerOrders(r.Context(), userIDFrom(r.Context()), pageParam(r))
	if err != nil {
		h.serverError(w, "list customer orders", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid restaurant id")
		return
	}

	rest, err := h.Restaurants.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			writeError(w, http.StatusNotFound, "Restaurant not found")
			return
		}
		h.serverError(w, "get restaurant", err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) searchRestaurants(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]
	page, err := h.Restaurants.Search(r.Context(), city, r.URL.Query().Get("searchQuery"), pageParam(r))
	if err != nil {
		h.serverError(w, "search restaurants", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) serverError(w http.ResponseWriter, op string, err error) {
	h.Log.Errorw("request failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// pageParam normalizes absent, zero, negative and non-numeric page values
// to the first page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
