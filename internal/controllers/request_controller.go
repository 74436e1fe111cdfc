package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"storedash/internal/models"
	"storedash/internal/notify"
)

// RequestController runs the approval pipeline for deferred change
// requests: submission, listing, and the decide step that applies the
// requested mutation atomically with the request's own status flip.
type RequestController struct {
	db  *gorm.DB
	sms notify.SMSSender
}

func NewRequestController(db *gorm.DB, sms notify.SMSSender) *RequestController {
	return &RequestController{db: db, sms: sms}
}

type addRequestInput struct {
	Type    models.RequestType    `json:"type" binding:"required"`
	Payload models.RequestPayload `json:"payload"`
}

type decideRequestInput struct {
	Status     string `json:"status" binding:"required"`
	ApprovedBy string `json:"approvedBy"`
}

// AddRequest registers a Pending request after per-type payload
// validation. Nothing is written when validation fails.
func (r *RequestController) AddRequest(c *gin.Context) {
	var input addRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if !input.Type.Valid() {
		respondError(c, http.StatusBadRequest, "Provide a valid Request Type")
		return
	}
	if err := input.Payload.ValidateFor(input.Type); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	request := models.AdminRequest{
		Type:    input.Type,
		Payload: input.Payload,
		UserID:  input.Payload.UserID,
		Status:  models.RequestPending,
	}
	if err := r.db.Create(&request).Error; err != nil {
		logrus.WithError(err).Error("AddRequest: create failed")
		respondError(c, http.StatusInternalServerError, "Could not create request")
		return
	}

	respond(c, http.StatusCreated, "Request Sent", request)
}

// ListRequests returns requests filtered by status and type.
func (r *RequestController) ListRequests(c *gin.Context) {
	query := r.db.Model(&models.AdminRequest{})

	if s := c.Query("status"); s != "" {
		status, ok := models.ParseRequestStatus(s)
		if !ok {
			respondError(c, http.StatusBadRequest, `"status" should be any of these: Pending|Approved|Declined`)
			return
		}
		query = query.Where("status = ?", status)
	}
	if t := c.Query("type"); t != "" {
		if !models.RequestType(t).Valid() {
			respondError(c, http.StatusBadRequest, "Provide a valid Request Type")
			return
		}
		query = query.Where("type = ?", t)
	}

	skip, limit := pagination(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not count requests")
		return
	}

	var requests []models.AdminRequest
	listQuery := query.Offset(skip)
	if limit > 0 {
		listQuery = listQuery.Limit(limit)
	}
	if err := listQuery.Find(&requests).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not list requests")
		return
	}

	respond(c, http.StatusOK, "Requests Fetched", PaginatedResponse{
		Data:  requests,
		Skip:  skip,
		Limit: limit,
		Total: total,
	})
}

// GetUserRequests returns a user's pending requests of one type, used
// by clients to suppress duplicate submissions.
func (r *RequestController) GetUserRequests(c *gin.Context) {
	userIDStr := c.Query("userid")
	if userIDStr == "" {
		respondError(c, http.StatusBadRequest, "Provide User ID")
		return
	}
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid User ID format")
		return
	}

	requestType := models.RequestType(c.Query("type"))
	if requestType == "" {
		requestType = models.RequestUpdateEmail
	} else if !requestType.Valid() {
		respondError(c, http.StatusBadRequest, "Provide a valid Request Type")
		return
	}

	var requests []models.AdminRequest
	if err := r.db.
		Where("status = ? AND type = ? AND user_id = ?", models.RequestPending, requestType, uint(userID)).
		Find(&requests).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not list requests")
		return
	}

	respond(c, http.StatusOK, "Requests Fetched", PaginatedResponse{
		Data:  requests,
		Total: int64(len(requests)),
	})
}

// UpdateRequest decides a pending request. Approval applies the
// type-specific mapping to the target account and flips the request's
// status inside one transaction; decline touches the request row only.
// The affected user is texted after the write succeeds.
func (r *RequestController) UpdateRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid Request ID format")
		return
	}

	var input decideRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	status, ok := models.ParseRequestStatus(input.Status)
	if !ok || status == models.RequestPending {
		respondError(c, http.StatusBadRequest, "Provide a valid Status")
		return
	}

	var request models.AdminRequest
	if err := r.db.First(&request, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Record (Request) not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Database error: "+err.Error())
		}
		return
	}

	if request.Status != models.RequestPending {
		respondError(c, http.StatusConflict, "Request already decided")
		return
	}

	phone, err := r.targetPhone(request)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Record (user) not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Database error: "+err.Error())
		}
		return
	}

	now := time.Now()
	requestPatch := map[string]interface{}{
		"status":        status,
		"approved_by":   input.ApprovedBy,
		"approval_date": now,
	}

	if status == models.RequestApproved {
		tx := r.db.Begin()
		if tx.Error != nil {
			respondError(c, http.StatusInternalServerError, "Could not start transaction")
			return
		}

		if err := applyRequest(tx, request); err != nil {
			tx.Rollback()
			logrus.WithError(err).Error("UpdateRequest: target update failed")
			respondError(c, http.StatusBadRequest, "An Error Occurred")
			return
		}
		if err := tx.Model(&models.AdminRequest{}).Where("id = ?", request.ID).
			Updates(requestPatch).Error; err != nil {
			tx.Rollback()
			logrus.WithError(err).Error("UpdateRequest: request update failed")
			respondError(c, http.StatusBadRequest, "An Error Occurred")
			return
		}
		if err := tx.Commit().Error; err != nil {
			logrus.WithError(err).Error("UpdateRequest: commit failed")
			respondError(c, http.StatusBadRequest, "An Error Occurred")
			return
		}
	} else {
		if err := r.db.Model(&models.AdminRequest{}).Where("id = ?", request.ID).
			Updates(requestPatch).Error; err != nil {
			logrus.WithError(err).Error("UpdateRequest: request update failed")
			respondError(c, http.StatusBadRequest, "An Error Occurred")
			return
		}
	}

	// Notification is deliberately post-commit and best-effort; a
	// delivery failure never unwinds the decision.
	if err := r.sms.SendSMS(phone, decisionText(request.Type, status)); err != nil {
		notify.LogFailure("sms", err)
	}

	respond(c, http.StatusOK, "Request Updated", gin.H{})
}

// targetPhone resolves the request's subject in the collection its
// type points at and returns the phone number for the outcome SMS.
func (r *RequestController) targetPhone(request models.AdminRequest) (string, error) {
	userID := request.Payload.UserID
	switch request.Type {
	case models.RequestUpdateRetailerDetails:
		var retailer models.Retailer
		if err := r.db.First(&retailer, userID).Error; err != nil {
			return "", err
		}
		return retailer.Phone, nil
	case models.RequestUpdateDriverDetails, models.RequestVerifyDriver:
		var driver models.Driver
		if err := r.db.First(&driver, userID).Error; err != nil {
			return "", err
		}
		return driver.Phone, nil
	default: // UPDATEEMAIL targets distributors
		var distributor models.Distributor
		if err := r.db.First(&distributor, userID).Error; err != nil {
			return "", err
		}
		return distributor.Phone, nil
	}
}

// applyRequest writes the approved change onto the target account
// inside the caller's transaction.
func applyRequest(tx *gorm.DB, request models.AdminRequest) error {
	payload := request.Payload
	switch request.Type {
	case models.RequestUpdateRetailerDetails:
		updates := map[string]interface{}{}
		if payload.FirstName != "" {
			updates["first_name"] = payload.FirstName
		}
		if payload.LastName != "" {
			updates["last_name"] = payload.LastName
		}
		if payload.Phone != "" {
			updates["phone"] = payload.Phone
		}
		if payload.StoreAddress != "" {
			updates["store_address"] = payload.StoreAddress
		}
		if payload.StoreAddressCoordinates != "" {
			updates["store_address_coordinates"] = payload.StoreAddressCoordinates
		}
		return tx.Model(&models.Retailer{}).Where("id = ?", payload.UserID).
			Updates(updates).Error
	case models.RequestUpdateDriverDetails:
		updates := map[string]interface{}{}
		if payload.FirstName != "" {
			updates["first_name"] = payload.FirstName
		}
		if payload.LastName != "" {
			updates["last_name"] = payload.LastName
		}
		if payload.Phone != "" {
			updates["phone"] = payload.Phone
		}
		// storeAddress maps onto the driver's residential address.
		if payload.StoreAddress != "" {
			updates["residential_address"] = payload.StoreAddress
		}
		if payload.StoreAddressCoordinates != "" {
			updates["residential_address_coordinates"] = payload.StoreAddressCoordinates
		}
		return tx.Model(&models.Driver{}).Where("id = ?", payload.UserID).
			Updates(updates).Error
	case models.RequestVerifyDriver:
		return tx.Model(&models.Driver{}).Where("id = ?", payload.UserID).
			Update("verified", true).Error
	default: // UPDATEEMAIL
		return tx.Model(&models.Distributor{}).Where("id = ?", payload.UserID).
			Update("email", payload.NewEmail).Error
	}
}

// decisionText is the outcome SMS wording, which varies per type.
func decisionText(t models.RequestType, status models.RequestStatus) string {
	outcome := "approved"
	if status == models.RequestDeclined {
		outcome = "declined"
	}
	switch t {
	case models.RequestUpdateRetailerDetails, models.RequestUpdateDriverDetails:
		return fmt.Sprintf("Request to update your Storedash details has been %s", outcome)
	case models.RequestVerifyDriver:
		if status == models.RequestApproved {
			return "Your Storedash driver account has been verified"
		}
		return "Request to verify your Storedash driver account has been declined"
	default:
		return fmt.Sprintf("Request to update your Storedash email address has been %s", outcome)
	}
}
