package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mudgalz/foodie-be/internal/domain"
	"github.com/mudgalz/foodie-be/internal/payment"
)

// OrderService is the checkout orchestrator and order ledger: it builds
// pending orders, opens hosted payment sessions, applies the payment
// callback and serves status updates and paginated views.
type OrderService struct {
	orders      OrderRepository
	restaurants RestaurantRepository
	payments    payment.SessionCreator
	publisher   OrderEventPublisher
	frontendURL string
	currency    string
	log         *zap.SugaredLogger
}

func NewOrderService(orders OrderRepository, restaurants RestaurantRepository, payments payment.SessionCreator, publisher OrderEventPublisher, frontendURL, currency string, log *zap.SugaredLogger) *OrderService {
	return &OrderService{
		orders:      orders,
		restaurants: restaurants,
		payments:    payments,
		publisher:   publisher,
		frontendURL: frontendURL,
		currency:    currency,
		log:         log,
	}
}

// CreateCheckoutSession validates the cart against the restaurant's current
// menu, opens a hosted payment session and persists the order in `placed`
// state. The order is written only after the provider returns a usable
// redirect URL, so a provider failure leaves nothing behind to roll back.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, userID int, req *domain.CheckoutSessionRequest) (string, error) {
	if len(req.CartItems) == 0 {
		return "", ErrEmptyCart
	}

	rest, err := s.restaurants.GetRestaurantByID(ctx, req.RestaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrRestaurantNotFound
	}
	if err != nil {
		return "", fmt.Errorf("look up restaurant: %w", err)
	}

	menu := make(map[int]domain.MenuItem, len(rest.MenuItems))
	for _, item := range rest.MenuItems {
		menu[item.ID] = item
	}

	// Line items are priced from the current menu, never from the client.
	lineItems := make([]payment.LineItem, 0, len(req.CartItems))
	cart := make([]domain.OrderItem, 0, len(req.CartItems))
	for _, line := range req.CartItems {
		menuItem, ok := menu[line.MenuItemID]
		if !ok || line.Quantity < 1 {
			return "", fmt.Errorf("%w: %d", ErrMenuItemNotFound, line.MenuItemID)
		}
		lineItems = append(lineItems, payment.LineItem{
			Name:       menuItem.Name,
			UnitAmount: menuItem.Price,
			Quantity:   line.Quantity,
		})
		cart = append(cart, domain.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   line.Quantity,
		})
	}

	// The id is allocated up front so the provider callback can correlate,
	// but the row is only written once a session exists.
	orderID, err := s.orders.NextOrderID(ctx)
	if err != nil {
		return "", fmt.Errorf("allocate order id: %w", err)
	}

	session, err := s.payments.CreateSession(ctx, payment.SessionParams{
		LineItems:      lineItems,
		ShippingAmount: rest.DeliveryPrice,
		Currency:       s.currency,
		OrderID:        orderID,
		RestaurantID:   rest.ID,
		SuccessURL:     fmt.Sprintf("%s/order-status?success=true", s.frontendURL),
		CancelURL:      fmt.Sprintf("%s/detail/%d?cancelled=true", s.frontendURL, rest.ID),
	})
	if err != nil {
		return "", fmt.Errorf("payment provider: %w", err)
	}
	if session == nil || session.URL == "" {
		return "", fmt.Errorf("payment provider: %w", errors.New("session has no redirect URL"))
	}

	order := &domain.Order{
		ID:              orderID,
		RestaurantID:    rest.ID,
		UserID:          userID,
		Status:          domain.OrderStatusPlaced,
		DeliveryDetails: req.DeliveryDetails,
		CartItems:       cart,
		CreatedAt:       time.Now(),
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return "", fmt.Errorf("persist order: %w", err)
	}

	s.publish(ctx, domain.OrderEvent{
		Type:         domain.EventOrderPlaced,
		OrderID:      order.ID,
		RestaurantID: rest.ID,
		Status:       domain.OrderStatusPlaced,
		Timestamp:    time.Now(),
	})

	return session.URL, nil
}

// HandleCheckoutCompleted applies a verified completion callback: the order
// moves to `paid` and records the provider-reported total. The transition is
// guarded so a duplicate or late event cannot clobber an order that has
// already progressed past `placed`; the guarded no-op is still acknowledged.
func (s *OrderService) HandleCheckoutCompleted(ctx context.Context, orderID int, amountTotal int64) error {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("look up order: %w", err)
	}

	applied, err := s.orders.MarkOrderPaid(ctx, orderID, amountTotal)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if !applied {
		s.log.Infow("payment event ignored, order already past placed",
			"order_id", orderID, "status", order.Status)
		return nil
	}

	s.publish(ctx, domain.OrderEvent{
		Type:         domain.EventOrderPaid,
		OrderID:      orderID,
		RestaurantID: order.RestaurantID,
		Status:       domain.OrderStatusPaid,
		Amount:       amountTotal,
		Timestamp:    time.Now(),
	})
	return nil
}

// ListCustomerOrders returns the viewer's own orders, newest first. Orders
// still in `placed` are excluded: a checkout that was never paid stays
// invisible.
func (s *OrderService) ListCustomerOrders(ctx context.Context, userID, page int) (*domain.OrderPage, error) {
	page = NormalizePage(page)
	orders, total, err := s.orders.ListOrdersByCustomer(ctx, userID, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return &domain.OrderPage{Data: orders, Pagination: paginate(total, page)}, nil
}

// ListRestaurantOrders returns orders placed against the restaurant owned by
// ownerID, subject to the same `placed` exclusion.
func (s *OrderService) ListRestaurantOrders(ctx context.Context, ownerID, page int) (*domain.OrderPage, error) {
	rest, err := s.restaurants.GetRestaurantByOwner(ctx, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up restaurant: %w", err)
	}

	page = NormalizePage(page)
	orders, total, err := s.orders.ListOrdersByRestaurant(ctx, rest.ID, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("list restaurant orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return &domain.OrderPage{Data: orders, Pagination: paginate(total, page)}, nil
}

// UpdateStatus lets the owning restaurant set a new status. Ownership is
// checked against the order's restaurant; the status itself only has to be
// a known value.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, ownerID int, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.orders.GetOrderByID(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up order: %w", err)
	}

	rest, err := s.restaurants.GetRestaurantByID(ctx, order.RestaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up restaurant: %w", err)
	}
	if rest.UserID != ownerID {
		return nil, ErrNotOwner
	}

	if err := s.orders.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = status

	s.publish(ctx, domain.OrderEvent{
		Type:         domain.EventOrderStatusChanged,
		OrderID:      orderID,
		RestaurantID: order.RestaurantID,
		Status:       status,
		Timestamp:    time.Now(),
	})
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.Warnw("failed to publish order event",
			"type", event.Type, "order_id", event.OrderID, "error", err)
	}
}

var _ OrderServiceInterface = (*OrderService)(nil)
