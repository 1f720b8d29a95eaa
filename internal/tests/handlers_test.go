package tests

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "github.com/mudgalz/foodie-be/internal/api/http"
	"github.com/mudgalz/foodie-be/internal/auth"
	"github.com/mudgalz/foodie-be/internal/domain"
	"github.com/mudgalz/foodie-be/internal/mocks"
	"github.com/mudgalz/foodie-be/internal/payment"
	"github.com/mudgalz/foodie-be/internal/service"
)

const testSubject = "auth0|abc"

type handlerMocks struct {
	users    *mocks.UserServiceInterface
	rests    *mocks.RestaurantServiceInterface
	orders   *mocks.OrderServiceInterface
	webhooks *mocks.WebhookVerifier
}

func newTestRouter(t *testing.T) (*mux.Router, handlerMocks, string) {
	t.Helper()

	m := handlerMocks{
		users:    new(mocks.UserServiceInterface),
		rests:    new(mocks.RestaurantServiceInterface),
		orders:   new(mocks.OrderServiceInterface),
		webhooks: new(mocks.WebhookVerifier),
	}

	verifier := auth.NewVerifier("test-secret")
	token, err := verifier.Sign(testSubject, time.Hour)
	assert.NoError(t, err)

	handler := httpapi.NewHandler(m.users, m.rests, m.orders, verifier, m.webhooks, testLogger())
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, m, token
}

// expectAccount wires the credential-to-account lookup the protected routes
// perform before the handler body runs.
func (m handlerMocks) expectAccount() {
	m.users.On("GetByAuth0ID", mock.Anything, testSubject).
		Return(&domain.User{ID: 9, Auth0ID: testSubject}, nil).Once()
}

func TestAuthentication(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized},
		{name: "not a bearer token", header: "Basic abc", wantCode: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.jwt", wantCode: http.StatusUnauthorized},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, _, _ := newTestRouter(t)

			req := httptest.NewRequest("GET", "/api/user/me", nil)
			if testCase.header != "" {
				req.Header.Set("Authorization", testCase.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}

	t.Run("credential without an account", func(t *testing.T) {
		r, m, token := newTestRouter(t)
		m.users.On("GetByAuth0ID", mock.Anything, testSubject).
			Return(nil, service.ErrUserNotFound).Once()

		req := httptest.NewRequest("GET", "/api/user/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCreateCurrentUserHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(handlerMocks)
		wantCode  int
	}{
		{
			name: "new account",
			body: `{"auth0Id":"auth0|abc","email":"a@b.test"}`,
			setupMock: func(m handlerMocks) {
				m.users.On("GetOrCreate", mock.Anything, testSubject, "a@b.test").
					Return(&domain.User{ID: 9}, true, nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "existing account",
			body: `{"auth0Id":"auth0|abc","email":"a@b.test"}`,
			setupMock: func(m handlerMocks) {
				m.users.On("GetOrCreate", mock.Anything, testSubject, "a@b.test").
					Return(&domain.User{ID: 9}, false, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "subject mismatch",
			body:      `{"auth0Id":"auth0|someone-else","email":"a@b.test"}`,
			setupMock: func(m handlerMocks) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:      "invalid JSON",
			body:      `{invalid}`,
			setupMock: func(m handlerMocks) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, m, token := newTestRouter(t)
			testCase.setupMock(m)

			req := httptest.NewRequest("POST", "/api/user/me", bytes.NewBufferString(testCase.body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			m.users.AssertExpectations(t)
		})
	}
}

func TestGetCurrentUserHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r, m, token := newTestRouter(t)
		m.expectAccount()
		m.users.On("Get", mock.Anything, 9).
			Return(&domain.User{ID: 9, Email: "a@b.test"}, nil).Once()

		req := httptest.NewRequest("GET", "/api/user/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var user domain.User
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		assert.Equal(t, "a@b.test", user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		r, m, token := newTestRouter(t)
		m.expectAccount()
		m.users.On("Get", mock.Anything, 9).Return(nil, service.ErrUserNotFound).Once()

		req := httptest.NewRequest("GET", "/api/user/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func restaurantForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	assert.NoError(t, writer.WriteField("restaurantName", "Spice Route"))
	assert.NoError(t, writer.WriteField("city", "Pune"))
	assert.NoError(t, writer.WriteField("country", "India"))
	assert.NoError(t, writer.WriteField("deliveryPrice", "100"))
	assert.NoError(t, writer.WriteField("estimatedDeliveryTime", "30"))
	assert.NoError(t, writer.WriteField("cuisines", `["indian","tandoor"]`))
	assert.NoError(t, writer.WriteField("menuItems", `[{"name":"Paneer Tikka","price":500}]`))
	assert.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestCreateMyRestaurantHandler(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(handlerMocks)
		wantCode  int
	}{
		{
			name: "created",
			setupMock: func(m handlerMocks) {
				m.rests.On("CreateForOwner", mock.Anything, mock.MatchedBy(func(rest *domain.Restaurant) bool {
					return rest.UserID == 9 && rest.Name == "Spice Route" && len(rest.MenuItems) == 1
				}), mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "account already owns one",
			setupMock: func(m handlerMocks) {
				m.rests.On("CreateForOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(service.ErrRestaurantExists).Once()
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, m, token := newTestRouter(t)
			m.expectAccount()
			testCase.setupMock(m)

			body, contentType := restaurantForm(t)
			req := httptest.NewRequest("POST", "/api/my/restaurant", body)
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			m.rests.AssertExpectations(t)
		})
	}

	t.Run("missing restaurant name", func(t *testing.T) {
		r, m, token := newTestRouter(t)
		m.expectAccount()

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		assert.NoError(t, writer.WriteField("deliveryPrice", "100"))
		assert.NoError(t, writer.Close())

		req := httptest.NewRequest("POST", "/api/my/restaurant", &body)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.rests.AssertNotCalled(t, "CreateForOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateMyRestaurantHandler(t *testing.T) {
	t.Run("replaced", func(t *testing.T) {
		r, m, token := newTestRouter(t)
		m.expectAccount()
		m.rests.On("ReplaceForOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil).Once()

		body, contentType := restaurantForm(t)
		req := httptest.NewRequest("PUT", "/api/my/restaurant", body)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("no restaurant yet", func(t *testing.T) {
		r, m, token := newTestRouter(t)
		m.expectAccount()
		m.rests.On("ReplaceForOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(service.ErrRestaurantNotFound).Once()

		body, contentType := restaurantForm(t)
		req := httptest.NewRequest("PUT", "/api/my/restaurant", body)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetMyRestaurantQRCodeHandler(t *testing.T) {
	r, m, token := newTestRouter(t)
	m.expectAccount()
	m.rests.On("MenuQRCode", mock.Anything, 9).Return([]byte("png-bytes"), nil).Once()

	req := httptest.NewRequest("GET", "/api/my/restaurant/qrcode", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", w.Body.String())
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	tests := []struct {
		name      string
		orderID   string
		body      string
		setupMock func(handlerMocks)
		wantCode  int
	}{
		{
			name:    "owner updates status",
			orderID: "42",
			body:    `{"status":"outForDelivery"}`,
			setupMock: func(m handlerMocks) {
				m.orders.On("UpdateStatus", mock.Anything, 42, 9, domain.OrderStatusOutForDelivery).
					Return(&domain.Order{ID: 42, Status: domain.OrderStatusOutForDelivery}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "non-numeric order id",
			orderID:   "abc",
			body:      `{"status":"paid"}`,
			setupMock: func(m handlerMocks) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:    "unknown status",
			orderID: "42",
			body:    `{"status":"teleported"}`,
			setupMock: func(m handlerMocks) {
				m.orders.On("UpdateStatus", mock.Anything, 42, 9, domain.OrderStatus("teleported")).
					Return(nil, service.ErrInvalidStatus).Once()
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:    "not the owner",
			orderID: "42",
			body:    `{"status":"confirmed"}`,
			setupMock: func(m handlerMocks) {
				m.orders.On("UpdateStatus", mock.Anything, 42, 9, domain.OrderStatusConfirmed).
					Return(nil, service.ErrNotOwner).Once()
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "order not found",
			orderID: "999",
			body:    `{"status":"confirmed"}`,
			setupMock: func(m handlerMocks) {
				m.orders.On("UpdateStatus", mock.Anything, 999, 9, domain.OrderStatusConfirmed).
					Return(nil, service.ErrOrderNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, m, token := newTestRouter(t)
			m.expectAccount()
			testCase.setupMock(m)

			req := httptest.NewRequest("PATCH", "/api/my/restaurant/order/"+testCase.orderID+"/status",
				bytes.NewBufferString(testCase.body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			m.orders.AssertExpectations(t)
		})
	}
}

func TestCreateCheckoutSessionHandler(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(handlerMocks)
		wantCode  int
		wantURL   string
	}{
		{
			name: "session created",
			setupMock: func(m handlerMocks) {
				m.orders.On("CreateCheckoutSession", mock.Anything, 9, mock.Anything).
					Return("https://pay.test/cs_1", nil).Once()
			},
			wantCode: http.StatusOK,
			wantURL:  "https://pay.test/cs_1",
		},
		{
			name: "restaurant not found",
			setupMock: func(m handlerMocks) {
				m.orders.On("CreateCheckoutSession", mock.Anything, 9, mock.Anything).
					Return("", service.ErrRestaurantNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "stale cart item",
			setupMock: func(m handlerMocks) {
				m.orders.On("CreateCheckoutSession", mock.Anything, 9, mock.Anything).
					Return("", service.ErrMenuItemNotFound).Once()
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "payment provider down",
			setupMock: func(m handlerMocks) {
				m.orders.On("CreateCheckoutSession", mock.Anything, 9, mock.Anything).
					Return("", assert.AnError).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	body := `{"restaurantId":7,"cartItems":[{"menuItemId":1,"quantity":2}],"deliveryDetails":{"name":"Asha","city":"Pune"}}`

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, m, token := newTestRouter(t)
			m.expectAccount()
			testCase.setupMock(m)

			req := httptest.NewRequest("POST", "/api/order/checkout/create-checkout-session",
				bytes.NewBufferString(body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantURL != "" {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, testCase.wantURL, resp["url"])
			}
		})
	}
}

func TestPaymentWebhookHandler(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(handlerMocks)
		wantCode  int
	}{
		{
			name: "completion applied",
			setupMock: func(m handlerMocks) {
				m.webhooks.On("VerifyEvent", mock.Anything, "sig").
					Return(&payment.CheckoutCompleted{OrderID: 42, AmountTotal: 1180}, nil).Once()
				m.orders.On("HandleCheckoutCompleted", mock.Anything, 42, int64(1180)).Return(nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "bad signature",
			setupMock: func(m handlerMocks) {
				m.webhooks.On("VerifyEvent", mock.Anything, "sig").
					Return(nil, payment.ErrInvalidSignature).Once()
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "authentic but not a completion",
			setupMock: func(m handlerMocks) {
				m.webhooks.On("VerifyEvent", mock.Anything, "sig").Return(nil, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "unknown order",
			setupMock: func(m handlerMocks) {
				m.webhooks.On("VerifyEvent", mock.Anything, "sig").
					Return(&payment.CheckoutCompleted{OrderID: 999}, nil).Once()
				m.orders.On("HandleCheckoutCompleted", mock.Anything, 999, int64(0)).
					Return(service.ErrOrderNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, m, _ := newTestRouter(t)
			testCase.setupMock(m)

			req := httptest.NewRequest("POST", "/api/order/checkout/webhook",
				bytes.NewBufferString(`{"id":"evt_1"}`))
			req.Header.Set("Stripe-Signature", "sig")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			m.webhooks.AssertExpectations(t)
			m.orders.AssertExpectations(t)

			if testCase.wantCode == http.StatusBadRequest {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Contains(t, resp["message"], "Webhook error")
			}
		})
	}
}

func TestGetMyOrdersHandler(t *testing.T) {
	r, m, token := newTestRouter(t)
	m.expectAccount()
	m.orders.On("ListCustomerOrders", mock.Anything, 9, 2).
		Return(&domain.OrderPage{
			Data:       []domain.Order{{ID: 1, Status: domain.OrderStatusPaid}},
			Pagination: domain.Pagination{Total: 12, Page: 2, Pages: 2},
		}, nil).Once()

	req := httptest.NewRequest("GET", "/api/order/mine?page=2", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var page domain.OrderPage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.Pagination.Pages)
}

func TestGetMyRestaurantOrdersHandler(t *testing.T) {
	t.Run("page defaults to one on junk input", func(t *testing.T) {
		r, m, token := newTestRouter(t)
		m.expectAccount()
		m.orders.On("ListRestaurantOrders", mock.Anything, 9, 1).
			Return(&domain.OrderPage{Data: []domain.Order{}, Pagination: domain.Pagination{Page: 1}}, nil).Once()

		req := httptest.NewRequest("GET", "/api/my/restaurant/orders?page=abc", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		m.orders.AssertExpectations(t)
	})

	t.Run("no restaurant", func(t *testing.T) {
		r, m, token := newTestRouter(t)
		m.expectAccount()
		m.orders.On("ListRestaurantOrders", mock.Anything, 9, 1).
			Return(nil, service.ErrRestaurantNotFound).Once()

		req := httptest.NewRequest("GET", "/api/my/restaurant/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetRestaurantHandler(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(handlerMocks)
		wantCode  int
	}{
		{
			name: "found",
			id:   "7",
			setupMock: func(m handlerMocks) {
				m.rests.On("GetByID", mock.Anything, 7).
					Return(&domain.Restaurant{ID: 7, Name: "Spice Route"}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "not found",
			id:   "999",
			setupMock: func(m handlerMocks) {
				m.rests.On("GetByID", mock.Anything, 999).
					Return(nil, service.ErrRestaurantNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "non-numeric id",
			id:        "abc",
			setupMock: func(m handlerMocks) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, m, _ := newTestRouter(t)
			testCase.setupMock(m)

			req := httptest.NewRequest("GET", "/api/restaurants/"+testCase.id, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			m.rests.AssertExpectations(t)
		})
	}
}

func TestSearchRestaurantsHandler(t *testing.T) {
	r, m, _ := newTestRouter(t)
	m.rests.On("Search", mock.Anything, "pune", "paneer", 1).
		Return(&domain.RestaurantPage{
			Data:       []domain.Restaurant{{ID: 7, Name: "Spice Route"}},
			Pagination: domain.Pagination{Total: 1, Page: 1, Pages: 1},
		}, nil).Once()

	req := httptest.NewRequest("GET", "/api/restaurants/search/pune?searchQuery=paneer", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var page domain.RestaurantPage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Data, 1)
	assert.Equal(t, "Spice Route", page.Data[0].Name)
}

func TestHealthCheckHandler(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}
