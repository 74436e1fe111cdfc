package models

import (
	"gorm.io/gorm"
)

// TripStatus is the operator-facing leg of an order's delivery.
type TripStatus string

const (
	TripHeadingToPickup  TripStatus = "HEADING_TO_PICKUP"
	TripHeadingToDropoff TripStatus = "HEADING_TO_DROPOFF"
	TripComplete         TripStatus = "COMPLETE"
)

var tripTransitions = map[TripStatus]TripStatus{
	TripHeadingToPickup:  TripHeadingToDropoff,
	TripHeadingToDropoff: TripComplete,
}

func (s TripStatus) Valid() bool {
	switch s {
	case TripHeadingToPickup, TripHeadingToDropoff, TripComplete:
		return true
	}
	return false
}

func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	if s == next {
		return true
	}
	return tripTransitions[s] == next
}

// TripPin is a numeric handover code confirmed at pickup or dropoff.
type TripPin struct {
	Pin       int  `json:"pin"`
	Confirmed bool `json:"confirmed"`
}

// Trip executes the delivery of exactly one order. OrderID,
// DistributorID and DispatchOperatorID are flat indexed columns; the
// operator snapshot (including the assigned vehicle) is JSON,
// snapshot-at-creation-time.
type Trip struct {
	gorm.Model
	Status             TripStatus       `json:"status" gorm:"index;default:'HEADING_TO_PICKUP'"`
	OrderID            uint             `json:"order_id" gorm:"index"`
	DistributorID      uint             `json:"distributor_id" gorm:"index"`
	DispatchOperatorID uint             `json:"dispatch_operator_id" gorm:"index"`
	DispatchOperator   OperatorSnapshot `json:"dispatchOperator" gorm:"serializer:json"`
	PickUpPin          TripPin          `json:"pickUpPin" gorm:"serializer:json"`
	DropOffPin         TripPin          `json:"dropOffPin" gorm:"serializer:json"`
}
