package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"storedash/internal/models"
	"storedash/internal/notify"
)

// TripController owns the trip half of the delivery state machine.
// Reaching HEADING_TO_DROPOFF notifies the retailer the operator is
// enroute.
type TripController struct {
	db   *gorm.DB
	push notify.PushSender
}

func NewTripController(db *gorm.DB, push notify.PushSender) *TripController {
	return &TripController{db: db, push: push}
}

type tripInput struct {
	Status           models.TripStatus        `json:"status"`
	OrderID          uint                     `json:"order_id"`
	DistributorID    uint                     `json:"distributor_id"`
	DispatchOperator *models.OperatorSnapshot `json:"dispatchOperator"`
	PickUpPin        *models.TripPin          `json:"pickUpPin"`
	DropOffPin       *models.TripPin          `json:"dropOffPin"`
}

// CreateTrip opens the delivery leg for an order. Status defaults to
// HEADING_TO_PICKUP.
func (t *TripController) CreateTrip(c *gin.Context) {
	var input tripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if input.Status != "" && !input.Status.Valid() {
		respondError(c, http.StatusBadRequest, "Provide a valid Status")
		return
	}

	trip := models.Trip{
		Status:        input.Status,
		OrderID:       input.OrderID,
		DistributorID: input.DistributorID,
	}
	if trip.Status == "" {
		trip.Status = models.TripHeadingToPickup
	}
	if input.DispatchOperator != nil {
		trip.DispatchOperator = *input.DispatchOperator
		trip.DispatchOperatorID = input.DispatchOperator.ID
	}
	if input.PickUpPin != nil {
		trip.PickUpPin = *input.PickUpPin
	}
	if input.DropOffPin != nil {
		trip.DropOffPin = *input.DropOffPin
	}

	if err := t.db.Create(&trip).Error; err != nil {
		logrus.WithError(err).Error("CreateTrip: create failed")
		respondError(c, http.StatusInternalServerError, "Could not create trip")
		return
	}

	respond(c, http.StatusCreated, "Trip Created", trip)
}

// GetTrips fetches trips by id or by order/distributor/operator/status
// filters.
func (t *TripController) GetTrips(c *gin.Context) {
	skip, limit := pagination(c)

	query := t.db.Model(&models.Trip{})
	if id := c.Query("id"); id != "" {
		query = query.Where("id = ?", id)
	} else {
		if orderID := c.Query("orderID"); orderID != "" {
			query = query.Where("order_id = ?", orderID)
		}
		if distributorID := c.Query("distributorID"); distributorID != "" {
			query = query.Where("distributor_id = ?", distributorID)
		}
		if operatorID := c.Query("dispatchOperatorID"); operatorID != "" {
			query = query.Where("dispatch_operator_id = ?", operatorID)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", strings.ToUpper(status))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not count trips")
		return
	}

	var trips []models.Trip
	listQuery := query.Offset(skip)
	if limit > 0 {
		listQuery = listQuery.Limit(limit)
	}
	if err := listQuery.Find(&trips).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not list trips")
		return
	}

	respond(c, http.StatusOK, "Trip(s) Fetched", PaginatedResponse{
		Data:  trips,
		Skip:  skip,
		Limit: limit,
		Total: total,
	})
}

// SearchTrips matches a distributor's trips by status or operator
// fullname.
func (t *TripController) SearchTrips(c *gin.Context) {
	name := c.Query("name")
	pattern := "%" + strings.ToLower(name) + "%"

	query := t.db.Model(&models.Trip{}).
		Where("LOWER(status) LIKE ? OR LOWER(dispatch_operator) LIKE ?", pattern, pattern)
	if distributorID := c.Query("distributorID"); distributorID != "" {
		query = query.Where("distributor_id = ?", distributorID)
	}

	var trips []models.Trip
	if err := query.Find(&trips).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not search trips")
		return
	}

	respond(c, http.StatusOK, "Trip(s) Fetched", PaginatedResponse{
		Data:  trips,
		Total: int64(len(trips)),
	})
}

// UpdateTrip applies a partial update with transition enforcement.
// Moving to HEADING_TO_DROPOFF pushes a delivery update to the
// retailer behind the trip's order; the push is best-effort.
func (t *TripController) UpdateTrip(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid Trip ID format")
		return
	}

	var trip models.Trip
	if err := t.db.First(&trip, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Record not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Database error: "+err.Error())
		}
		return
	}

	var input tripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	statusChanged := false
	if input.Status != "" {
		if !input.Status.Valid() {
			respondError(c, http.StatusBadRequest, "Provide a valid Status")
			return
		}
		if !trip.Status.CanTransitionTo(input.Status) {
			respondError(c, http.StatusConflict,
				"Invalid status transition from "+string(trip.Status)+" to "+string(input.Status))
			return
		}
		statusChanged = trip.Status != input.Status
		trip.Status = input.Status
	}
	if input.DispatchOperator != nil {
		trip.DispatchOperator = *input.DispatchOperator
		trip.DispatchOperatorID = input.DispatchOperator.ID
	}
	if input.PickUpPin != nil {
		trip.PickUpPin = *input.PickUpPin
	}
	if input.DropOffPin != nil {
		trip.DropOffPin = *input.DropOffPin
	}

	if err := t.db.Save(&trip).Error; err != nil {
		logrus.WithError(err).Error("UpdateTrip: save failed")
		respondError(c, http.StatusInternalServerError, "Could not update trip")
		return
	}

	if statusChanged && trip.Status == models.TripHeadingToDropoff {
		t.notifyRetailer(trip)
	}

	respond(c, http.StatusOK, "Trip updated", trip)
}

// notifyRetailer resolves the retailer's device token through the
// trip's order and sends exactly one push attempt.
func (t *TripController) notifyRetailer(trip models.Trip) {
	var order models.Order
	if err := t.db.First(&order, trip.OrderID).Error; err != nil {
		notify.LogFailure("push", err)
		return
	}
	var retailer models.Retailer
	if err := t.db.First(&retailer, order.RetailerID).Error; err != nil {
		notify.LogFailure("push", err)
		return
	}
	if err := t.push.SendPush(retailer.FCMToken,
		"Delivery Update", "Dispatch Operator is enroute your store"); err != nil {
		notify.LogFailure("push", err)
	}
}

// DeleteTrip removes a trip only once it is complete.
func (t *TripController) DeleteTrip(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid Trip ID format")
		return
	}

	var trip models.Trip
	err = t.db.First(&trip, uint(id)).Error
	if err == nil && trip.Status != models.TripComplete {
		respondError(c, http.StatusConflict, "Cannot delete a trip in transit")
		return
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if err := t.db.Delete(&models.Trip{}, uint(id)).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not delete trip")
		return
	}

	respond(c, http.StatusOK, "Trip Deleted", true)
}
