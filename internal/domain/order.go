package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the delivery stage of an order. Stages only move forward.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
)

var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank orders statuses; unknown statuses rank -1.
func (s OrderStatus) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// Next returns the following stage. Delivered and unknown statuses have none.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusPending:
		return StatusProcessing, true
	case StatusProcessing:
		return StatusShipped, true
	case StatusShipped:
		return StatusDelivered, true
	default:
		return s, false
	}
}

// Payment methods accepted at checkout. Payment is simulated.
const (
	PaymentCOD  = "cod"
	PaymentUPI  = "upi"
	PaymentCard = "card"
)

// Billing holds the customer details captured at checkout.
type Billing struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Payment string `json:"payment"`
}

// Order is a placed cart snapshot. Only Status and DeliveredAt change after creation.
type Order struct {
	ID           int64           `json:"id"`
	Items        Cart            `json:"items"`
	Total        decimal.Decimal `json:"total"`
	PlacedAt     time.Time       `json:"placedAt"`
	DeliveryDate time.Time       `json:"deliveryDate"`
	Status       OrderStatus     `json:"status"`
	DeliveredAt  *time.Time      `json:"deliveredAt,omitempty"`
	Billing      *Billing        `json:"billing,omitempty"`
}
