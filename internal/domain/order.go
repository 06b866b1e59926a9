package domain

import "time"

type OrderType string

const (
	OrderCollection OrderType = "collection"
	OrderDelivery   OrderType = "delivery"
)

type PaymentMethod string

const (
	PaymentCash           PaymentMethod = "cash"
	PaymentCardOnDelivery PaymentMethod = "card_on_delivery"
)

// OrderLine is the structural snapshot of a cart line stored inside an
// order payload.
type OrderLine struct {
	MenuItemID     string                  `json:"menuItemId"`
	Name           string                  `json:"name"`
	Price          float64                 `json:"price"`
	Quantity       int                     `json:"quantity"`
	Customizations []CartLineCustomization `json:"customizations"`
	TotalPrice     float64                 `json:"totalPrice"`
}

// Order is the payload handed to the order store in a single create call.
// Address fields are nil unless the order is for delivery.
type Order struct {
	ID                  string        `json:"id"`
	CustomerName        string        `json:"customerName"`
	CustomerEmail       string        `json:"customerEmail"`
	CustomerPhone       string        `json:"customerPhone"`
	Type                OrderType     `json:"orderType"`
	DeliveryAddress     *string       `json:"deliveryAddress,omitempty"`
	DeliveryPostcode    *string       `json:"deliveryPostcode,omitempty"`
	Items               []OrderLine   `json:"items"`
	Subtotal            float64       `json:"subtotal"`
	DeliveryFee         float64       `json:"deliveryFee"`
	Total               float64       `json:"total"`
	PaymentMethod       PaymentMethod `json:"paymentMethod"`
	SpecialInstructions *string       `json:"specialInstructions,omitempty"`
	EstimatedTime       string        `json:"estimatedTime"`
	CreatedAt           time.Time     `json:"createdAt"`
}
