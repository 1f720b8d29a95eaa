package domain

import "time"

// All monetary values are integers in minor currency units (e.g. paise).

type User struct {
	ID          int       `json:"id"`
	Auth0ID     string    `json:"auth0Id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AddressLine string    `json:"addressLine"`
	City        string    `json:"city"`
	Zipcode     string    `json:"zipcode"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MenuItem struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurantId"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
}

type Restaurant struct {
	ID                    int        `json:"id"`
	UserID                int        `json:"userId"`
	Name                  string     `json:"restaurantName"`
	City                  string     `json:"city"`
	Country               string     `json:"country"`
	DeliveryPrice         int64      `json:"deliveryPrice"`
	EstimatedDeliveryTime int        `json:"estimatedDeliveryTime"`
	Cuisines              []string   `json:"cuisines"`
	MenuItems             []MenuItem `json:"menuItems"`
	ImageURL              string     `json:"imageUrl"`
	LastUpdated           time.Time  `json:"lastUpdated"`
}

type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusInProgress     OrderStatus = "inProgress"
	OrderStatusOutForDelivery OrderStatus = "outForDelivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusPaid, OrderStatusConfirmed,
		OrderStatusInProgress, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// DeliveryDetails is a snapshot taken at checkout time, not a live
// reference to the customer's profile.
type DeliveryDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
}

type OrderItem struct {
	MenuItemID int    `json:"menuItemId"`
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
}

type Order struct {
	ID              int             `json:"id"`
	RestaurantID    int             `json:"restaurantId"`
	RestaurantName  string          `json:"restaurantName,omitempty"`
	UserID          int             `json:"userId"`
	Status          OrderStatus     `json:"status"`
	DeliveryDetails DeliveryDetails `json:"deliveryDetails"`
	CartItems       []OrderItem     `json:"cartItems"`
	TotalAmount     int64           `json:"totalAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type CheckoutSessionRequest struct {
	RestaurantID    int             `json:"restaurantId"`
	CartItems       []OrderItem     `json:"cartItems"`
	DeliveryDetails DeliveryDetails `json:"deliveryDetails"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

type OrderPage struct {
	Data       []Order    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type RestaurantPage struct {
	Data       []Restaurant `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// OrderEvent is published to Kafka on order lifecycle changes.
type OrderEvent struct {
	Type         string      `json:"type"`
	OrderID      int         `json:"order_id"`
	RestaurantID int         `json:"restaurant_id"`
	Status       OrderStatus `json:"status"`
	Amount       int64       `json:"amount,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
}

const (
	EventOrderPlaced        = "order_placed"
	EventOrderPaid          = "order_paid"
	EventOrderStatusChanged = "order_status_changed"
)
