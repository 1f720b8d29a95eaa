package service

import (
	"context"
	"errors"

	"github.com/mudgalz/foodie-be/internal/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrRestaurantExists   = errors.New("user already has a restaurant")
	ErrOrderNotFound      = errors.New("order not found")
	ErrMenuItemNotFound   = errors.New("cart item not found on restaurant menu")
	ErrNotOwner           = errors.New("requesting user does not own this restaurant")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrEmptyCart          = errors.New("cart must contain at least one item")
)

// PageSize is the fixed page size for all paginated listings.
const PageSize = 10

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int) (*domain.User, error)
	UpdateUserProfile(ctx context.Context, user *domain.User) error
}

type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	GetRestaurantByID(ctx context.Context, id int) (*domain.Restaurant, error)
	GetRestaurantByOwner(ctx context.Context, userID int) (*domain.Restaurant, error)
	ReplaceRestaurant(ctx context.Context, rest *domain.Restaurant) error
	SearchRestaurants(ctx context.Context, city, query string, limit, offset int) ([]domain.Restaurant, int, error)
}

type OrderRepository interface {
	NextOrderID(ctx context.Context) (int, error)
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id int) (*domain.Order, error)
	MarkOrderPaid(ctx context.Context, id int, totalAmount int64) (bool, error)
	UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) error
	ListOrdersByCustomer(ctx context.Context, userID, limit, offset int) ([]domain.Order, int, error)
	ListOrdersByRestaurant(ctx context.Context, restaurantID, limit, offset int) ([]domain.Order, int, error)
}

// RestaurantCache is a best-effort read cache; lookups fall through to the
// repository on miss or error.
type RestaurantCache interface {
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, bool)
	SetRestaurant(ctx context.Context, rest *domain.Restaurant) error
	InvalidateRestaurant(ctx context.Context, id int) error
}

type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type UserServiceInterface interface {
	GetOrCreate(ctx context.Context, auth0ID, email string) (user *domain.User, created bool, err error)
	Get(ctx context.Context, id int) (*domain.User, error)
	GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int, name, addressLine, city, zipcode string) (*domain.User, error)
}

type RestaurantServiceInterface interface {
	CreateForOwner(ctx context.Context, rest *domain.Restaurant, image []byte, imageType string) error
	GetForOwner(ctx context.Context, userID int) (*domain.Restaurant, error)
	ReplaceForOwner(ctx context.Context, rest *domain.Restaurant, image []byte, imageType string) error
	GetByID(ctx context.Context, id int) (*domain.Restaurant, error)
	Search(ctx context.Context, city, query string, page int) (*domain.RestaurantPage, error)
	MenuQRCode(ctx context.Context, userID int) ([]byte, error)
}

type OrderServiceInterface interface {
	CreateCheckoutSession(ctx context.Context, userID int, req *domain.CheckoutSessionRequest) (url string, err error)
	HandleCheckoutCompleted(ctx context.Context, orderID int, amountTotal int64) error
	ListCustomerOrders(ctx context.Context, userID, page int) (*domain.OrderPage, error)
	ListRestaurantOrders(ctx context.Context, ownerID, page int) (*domain.OrderPage, error)
	UpdateStatus(ctx context.Context, orderID, ownerID int, status domain.OrderStatus) (*domain.Order, error)
}
