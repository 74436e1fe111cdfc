package controllers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"gorm.io/gorm"

	"storedash/internal/models"
)

func seedTrip(t *testing.T, db *gorm.DB, status models.TripStatus, orderID uint) models.Trip {
	t.Helper()
	trip := models.Trip{
		Status:             status,
		OrderID:            orderID,
		DistributorID:      2,
		DispatchOperatorID: 3,
		DispatchOperator: models.OperatorSnapshot{
			ID:       3,
			Fullname: "Kunle Adeyemi",
			Phone:    "+2348100000003",
			Vehicle:  models.VehicleSnapshot{Model: "HiAce", Make: "Toyota", NumberPlate: "LAG-123-XY"},
		},
		PickUpPin:  models.TripPin{Pin: 4821},
		DropOffPin: models.TripPin{Pin: 9174},
	}
	if err := db.Create(&trip).Error; err != nil {
		t.Fatalf("seed trip: %v", err)
	}
	return trip
}

func TestCreateTripDefaultsToHeadingToPickup(t *testing.T) {
	db := newTestDB(t)
	ctrl := NewTripController(db, &mockNotifier{})

	body := map[string]interface{}{
		"order_id":       1,
		"distributor_id": 2,
		"dispatchOperator": map[string]interface{}{
			"id":       3,
			"fullname": "Kunle Adeyemi",
		},
	}
	w := perform(t, ctrl.CreateTrip, http.MethodPost, "/delivery/trip", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}

	var trip models.Trip
	if err := db.First(&trip).Error; err != nil {
		t.Fatalf("load trip: %v", err)
	}
	if trip.Status != models.TripHeadingToPickup {
		t.Errorf("status = %q, want HEADING_TO_PICKUP", trip.Status)
	}
	if trip.DispatchOperatorID != 3 {
		t.Errorf("dispatchOperatorID = %d, want 3 from snapshot", trip.DispatchOperatorID)
	}
}

func TestUpdateTripPushesOnHeadingToDropoff(t *testing.T) {
	db := newTestDB(t)
	push := &mockNotifier{}
	ctrl := NewTripController(db, push)

	retailer := seedRetailer(t, db)
	order := seedOrder(t, db, models.HeadingToPickup)
	db.Model(&order).Update("retailer_id", retailer.ID)
	trip := seedTrip(t, db, models.TripHeadingToPickup, order.ID)

	w := perform(t, ctrl.UpdateTrip, http.MethodPut, "/delivery/trip/1",
		map[string]interface{}{"status": "HEADING_TO_DROPOFF"}, idParam(trip.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}

	if push.pushCount != 1 {
		t.Errorf("push attempts = %d, want 1", push.pushCount)
	}
	if push.lastToken != retailer.FCMToken {
		t.Errorf("push token = %q, want %q", push.lastToken, retailer.FCMToken)
	}
}

func TestUpdateTripSameStatusDoesNotPush(t *testing.T) {
	db := newTestDB(t)
	push := &mockNotifier{}
	ctrl := NewTripController(db, push)

	trip := seedTrip(t, db, models.TripHeadingToDropoff, 1)

	w := perform(t, ctrl.UpdateTrip, http.MethodPut, "/delivery/trip/1",
		map[string]interface{}{"status": "HEADING_TO_DROPOFF"}, idParam(trip.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}
	if push.pushCount != 0 {
		t.Errorf("push attempts = %d, want 0 for a no-op status", push.pushCount)
	}
}

func TestUpdateTripSurvivesPushFailure(t *testing.T) {
	db := newTestDB(t)
	push := &mockNotifier{fail: errors.New("fcm unreachable")}
	ctrl := NewTripController(db, push)

	retailer := seedRetailer(t, db)
	order := seedOrder(t, db, models.HeadingToPickup)
	db.Model(&order).Update("retailer_id", retailer.ID)
	trip := seedTrip(t, db, models.TripHeadingToPickup, order.ID)

	w := perform(t, ctrl.UpdateTrip, http.MethodPut, "/delivery/trip/1",
		map[string]interface{}{"status": "HEADING_TO_DROPOFF"}, idParam(trip.ID))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 despite push failure", w.Code)
	}

	var after models.Trip
	db.First(&after, trip.ID)
	if after.Status != models.TripHeadingToDropoff {
		t.Errorf("trip status = %q, want HEADING_TO_DROPOFF", after.Status)
	}
}

func TestUpdateTripTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     models.TripStatus
		to       string
		wantCode int
	}{
		{"pickup to dropoff", models.TripHeadingToPickup, "HEADING_TO_DROPOFF", http.StatusOK},
		{"dropoff to complete", models.TripHeadingToDropoff, "COMPLETE", http.StatusOK},
		{"skipping dropoff", models.TripHeadingToPickup, "COMPLETE", http.StatusConflict},
		{"reversing", models.TripComplete, "HEADING_TO_DROPOFF", http.StatusConflict},
		{"unknown status", models.TripHeadingToPickup, "ENROUTE", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			ctrl := NewTripController(db, &mockNotifier{})
			trip := seedTrip(t, db, tt.from, 1)

			w := perform(t, ctrl.UpdateTrip, http.MethodPut, "/delivery/trip/1",
				map[string]interface{}{"status": tt.to}, idParam(trip.ID))
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body %s", w.Code, tt.wantCode, w.Body.String())
			}

			var after models.Trip
			db.First(&after, trip.ID)
			if tt.wantCode != http.StatusOK && after.Status != tt.from {
				t.Errorf("trip status = %q, want unchanged %q", after.Status, tt.from)
			}
		})
	}
}

func TestUpdateTripConfirmsPins(t *testing.T) {
	db := newTestDB(t)
	ctrl := NewTripController(db, &mockNotifier{})
	trip := seedTrip(t, db, models.TripHeadingToPickup, 1)

	w := perform(t, ctrl.UpdateTrip, http.MethodPut, "/delivery/trip/1",
		map[string]interface{}{"pickUpPin": map[string]interface{}{"pin": 4821, "confirmed": true}},
		idParam(trip.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}

	var after models.Trip
	db.First(&after, trip.ID)
	if !after.PickUpPin.Confirmed || after.PickUpPin.Pin != 4821 {
		t.Errorf("pickUpPin = %+v, want confirmed 4821", after.PickUpPin)
	}
	if after.DropOffPin.Confirmed {
		t.Error("dropOffPin should stay unconfirmed")
	}
}

func TestDeleteTripGuard(t *testing.T) {
	tests := []struct {
		status   models.TripStatus
		wantCode int
	}{
		{models.TripHeadingToPickup, http.StatusConflict},
		{models.TripHeadingToDropoff, http.StatusConflict},
		{models.TripComplete, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			db := newTestDB(t)
			ctrl := NewTripController(db, &mockNotifier{})
			trip := seedTrip(t, db, tt.status, 1)

			w := perform(t, ctrl.DeleteTrip, http.MethodDelete, "/delivery/trip/1", nil, idParam(trip.ID))
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body %s", w.Code, tt.wantCode, w.Body.String())
			}
		})
	}
}

func TestGetTripsFilters(t *testing.T) {
	db := newTestDB(t)
	ctrl := NewTripController(db, &mockNotifier{})

	seedTrip(t, db, models.TripHeadingToPickup, 1)
	seedTrip(t, db, models.TripComplete, 2)

	w := perform(t, ctrl.GetTrips, http.MethodGet, "/delivery/trip?status=complete", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"total":1`) {
		t.Errorf("body = %s, want total 1", w.Body.String())
	}

	byOrder := perform(t, ctrl.GetTrips, http.MethodGet, "/delivery/trip?orderID=2", nil, nil)
	if !strings.Contains(byOrder.Body.String(), `"total":1`) {
		t.Errorf("body = %s, want total 1", byOrder.Body.String())
	}
}
