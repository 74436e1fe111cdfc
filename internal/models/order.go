package models

import (
	"gorm.io/gorm"
)

// OrderStatus is the delivery lifecycle state of an Order.
type OrderStatus string

const (
	OrderCreated     OrderStatus = "ORDER_CREATED"
	OrderProcessed   OrderStatus = "ORDER_PROCESSED"
	HeadingToPickup  OrderStatus = "HEADING_TO_PICKUP"
	HeadingToDropoff OrderStatus = "HEADING_TO_DROPOFF"
	OrderDelivered   OrderStatus = "ORDER_DELIVERED"
)

// orderTransitions is the forward-only state machine for orders.
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderCreated:     OrderProcessed,
	OrderProcessed:   HeadingToPickup,
	HeadingToPickup:  HeadingToDropoff,
	HeadingToDropoff: OrderDelivered,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderCreated, OrderProcessed, HeadingToPickup, HeadingToDropoff, OrderDelivered:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal move from s.
// Re-asserting the current status is allowed; skipping or reversing
// states is not.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	return orderTransitions[s] == next
}

// InTransit reports whether an order is between pickup and dropoff,
// the window in which deletion is refused.
func (s OrderStatus) InTransit() bool {
	return s == HeadingToPickup || s == HeadingToDropoff
}

// MeansOfPayment enumerates accepted payment methods.
type MeansOfPayment string

const (
	PaymentCash      MeansOfPayment = "CASH"
	PaymentDebitCard MeansOfPayment = "DEBITCARD"
)

func (m MeansOfPayment) Valid() bool {
	return m == PaymentCash || m == PaymentDebitCard
}

// RetailerSnapshot is the retailer as it looked when the order was
// placed. Snapshots are never synced back to the account row.
type RetailerSnapshot struct {
	ID           uint   `json:"id"`
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
	Address      string `json:"address"`
}

type DistributorSnapshot struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
	Address      string `json:"address"`
}

type VehicleSnapshot struct {
	ID          uint   `json:"id,omitempty"`
	Model       string `json:"model"`
	Make        string `json:"make"`
	NumberPlate string `json:"numberPlate"`
	Color       string `json:"color"`
}

type OperatorSnapshot struct {
	ID           uint            `json:"id"`
	Fullname     string          `json:"fullname"`
	Phone        string          `json:"phone"`
	ProfileImage string          `json:"profileImage,omitempty"`
	Vehicle      VehicleSnapshot `json:"vehicle"`
}

type OrderPayment struct {
	Status         bool           `json:"status"`
	MeansOfPayment MeansOfPayment `json:"meansOfPayment,omitempty"`
	PaymentRef     string         `json:"paymentRef,omitempty"`
}

type OrderItem struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

type CostBreakdown struct {
	Items    float64 `json:"items"`
	Booking  float64 `json:"booking"`
	Delivery float64 `json:"delivery"`
	Tax      float64 `json:"tax"`
}

// Order is a purchase plus its delivery. The retailer/distributor/
// operator snapshots are serialized JSON; RetailerID and DistributorID
// are duplicated as indexed columns so list filters stay cheap.
type Order struct {
	gorm.Model
	Status           OrderStatus         `json:"status" gorm:"index;default:'ORDER_CREATED'"`
	RetailerID       uint                `json:"retailer_id" gorm:"index"`
	DistributorID    uint                `json:"distributor_id" gorm:"index"`
	Retailer         RetailerSnapshot    `json:"retailer" gorm:"serializer:json"`
	Distributor      DistributorSnapshot `json:"distributor" gorm:"serializer:json"`
	DispatchOperator *OperatorSnapshot   `json:"dispatchOperator,omitempty" gorm:"serializer:json"`
	Payment          OrderPayment        `json:"payment" gorm:"serializer:json"`
	Items            []OrderItem         `json:"items" gorm:"serializer:json"`
	CostBreakdown    CostBreakdown       `json:"costBreakdown" gorm:"serializer:json"`
}
