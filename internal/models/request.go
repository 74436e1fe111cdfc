package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
)

// RequestType tags an AdminRequest with the kind of change being proposed.
type RequestType string

const (
	RequestUpdateEmail           RequestType = "UPDATEEMAIL"
	RequestUpdateRetailerDetails RequestType = "UPDATERETAILERDETAILS"
	RequestUpdateDriverDetails   RequestType = "UPDATEDRIVERDETAILS"
	RequestVerifyDriver          RequestType = "VERIFYDRIVER"
)

// RequestStatus is the lifecycle state of an AdminRequest.
// A request is created Pending and decided exactly once.
type RequestStatus string

const (
	RequestPending  RequestStatus = "Pending"
	RequestApproved RequestStatus = "Approved"
	RequestDeclined RequestStatus = "Declined"
)

var requestStatuses = map[string]RequestStatus{
	"PENDING":  RequestPending,
	"APPROVED": RequestApproved,
	"DECLINED": RequestDeclined,
}

// ParseRequestStatus normalizes a case-insensitive status string.
func ParseRequestStatus(s string) (RequestStatus, bool) {
	st, ok := requestStatuses[strings.ToUpper(strings.TrimSpace(s))]
	return st, ok
}

func (t RequestType) Valid() bool {
	switch t {
	case RequestUpdateEmail, RequestUpdateRetailerDetails,
		RequestUpdateDriverDetails, RequestVerifyDriver:
		return true
	}
	return false
}

// RequestPayload carries the type-dependent body of a request. Which
// fields are required depends on the request type; ValidateFor checks
// that before a row is created.
type RequestPayload struct {
	UserID                  uint   `json:"userId"`
	NewEmail                string `json:"newEmail,omitempty"`
	FirstName               string `json:"firstName,omitempty"`
	LastName                string `json:"lastName,omitempty"`
	Phone                   string `json:"phone,omitempty"`
	StoreAddress            string `json:"storeAddress,omitempty"`
	StoreAddressCoordinates string `json:"storeAddressCoordinates,omitempty"`
}

var (
	ErrProvideEmailAndUser = errors.New("Provide New Email and UserID")
	ErrProvideUserID       = errors.New("Provide UserID")
	ErrProvideDetails      = errors.New("Provide New Retailer Object")
	ErrBadCoordinates      = errors.New("Provide coordinates as a GeoJSON Point")
)

// ValidateFor checks the payload against the requirements of the given
// request type. It runs at the submission boundary so malformed
// requests never reach the workflow.
func (p RequestPayload) ValidateFor(t RequestType) error {
	switch t {
	case RequestUpdateRetailerDetails, RequestUpdateDriverDetails:
		if p.UserID == 0 {
			return ErrProvideUserID
		}
		if p.FirstName == "" && p.LastName == "" && p.Phone == "" &&
			p.StoreAddress == "" && p.StoreAddressCoordinates == "" {
			return ErrProvideDetails
		}
		if p.StoreAddressCoordinates != "" {
			if err := ValidateCoordinates(p.StoreAddressCoordinates); err != nil {
				return err
			}
		}
	case RequestVerifyDriver:
		if p.UserID == 0 {
			return ErrProvideUserID
		}
	default: // UPDATEEMAIL
		if p.NewEmail == "" || p.UserID == 0 {
			return ErrProvideEmailAndUser
		}
	}
	return nil
}

// ValidateCoordinates requires a GeoJSON Point, e.g.
// {"type":"Point","coordinates":[3.3792,6.5244]}.
func ValidateCoordinates(raw string) error {
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return ErrBadCoordinates
	}
	if _, ok := g.(*geom.Point); !ok {
		return ErrBadCoordinates
	}
	return nil
}

// AdminRequest is a deferred change proposal decided by an admin.
// UserID mirrors Payload.UserID so pending-per-user lookups stay a
// plain indexed query.
type AdminRequest struct {
	gorm.Model
	Type         RequestType    `json:"type" gorm:"index"`
	Payload      RequestPayload `json:"payload" gorm:"serializer:json"`
	UserID       uint           `json:"user_id" gorm:"index"`
	Status       RequestStatus  `json:"status" gorm:"index;default:'Pending'"`
	ApprovedBy   string         `json:"approvedBy"`
	ApprovalDate *time.Time     `json:"approvalDate,omitempty"`
}
