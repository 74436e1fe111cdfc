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
)

// OrderController owns the order half of the delivery state machine:
// status vocabulary and transition enforcement plus the in-transit
// delete guard.
type OrderController struct {
	db *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{db: db}
}

type orderInput struct {
	Status           models.OrderStatus         `json:"status"`
	Retailer         models.RetailerSnapshot    `json:"retailer"`
	Distributor      models.DistributorSnapshot `json:"distributor"`
	DispatchOperator *models.OperatorSnapshot   `json:"dispatchOperator"`
	Payment          *models.OrderPayment       `json:"payment"`
	Items            []models.OrderItem         `json:"items"`
	CostBreakdown    *models.CostBreakdown      `json:"costBreakdown"`
}

// CreateOrder persists a checkout. Status defaults to ORDER_CREATED
// and payment to unpaid when omitted.
func (o *OrderController) CreateOrder(c *gin.Context) {
	var input orderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if input.Status != "" && !input.Status.Valid() {
		respondError(c, http.StatusBadRequest, "Provide a valid Status")
		return
	}
	if input.Payment != nil && input.Payment.MeansOfPayment != "" &&
		!input.Payment.MeansOfPayment.Valid() {
		respondError(c, http.StatusBadRequest, "Provide a valid means of payment")
		return
	}

	order := models.Order{
		Status:           input.Status,
		RetailerID:       input.Retailer.ID,
		DistributorID:    input.Distributor.ID,
		Retailer:         input.Retailer,
		Distributor:      input.Distributor,
		DispatchOperator: input.DispatchOperator,
		Items:            input.Items,
	}
	if order.Status == "" {
		order.Status = models.OrderCreated
	}
	if input.Payment != nil {
		order.Payment = *input.Payment
	}
	if input.CostBreakdown != nil {
		order.CostBreakdown = *input.CostBreakdown
	}

	if err := o.db.Create(&order).Error; err != nil {
		logrus.WithError(err).Error("CreateOrder: create failed")
		respondError(c, http.StatusInternalServerError, "Could not create order")
		return
	}

	respond(c, http.StatusCreated, "Order Created", order)
}

// GetOrders fetches orders by id or by retailer/distributor/payment/
// status filters.
func (o *OrderController) GetOrders(c *gin.Context) {
	skip, limit := pagination(c)

	query := o.db.Model(&models.Order{})
	if id := c.Query("id"); id != "" {
		query = query.Where("id = ?", id)
	} else {
		if retailer := c.Query("retailer"); retailer != "" {
			query = query.Where("retailer_id = ?", retailer)
		}
		if distributor := c.Query("distributor"); distributor != "" {
			query = query.Where("distributor_id = ?", distributor)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", strings.ToUpper(status))
		}
		if payment := c.Query("payment"); payment != "" {
			paid, err := strconv.ParseBool(payment)
			if err != nil {
				respondError(c, http.StatusBadRequest, `"payment" should be true or false`)
				return
			}
			// Payment status lives inside the serialized payment column.
			query = query.Where("payment LIKE ?", paymentStatusPattern(paid))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not count orders")
		return
	}

	var orders []models.Order
	listQuery := query.Offset(skip)
	if limit > 0 {
		listQuery = listQuery.Limit(limit)
	}
	if err := listQuery.Find(&orders).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not list orders")
		return
	}

	respond(c, http.StatusOK, "Order(s) Fetched", PaginatedResponse{
		Data:  orders,
		Skip:  skip,
		Limit: limit,
		Total: total,
	})
}

func paymentStatusPattern(paid bool) string {
	if paid {
		return `%"status":true%`
	}
	return `%"status":false%`
}

// SearchOrders does a free-text match over the retailer business name
// and distributor name snapshots, optionally scoped to a status.
func (o *OrderController) SearchOrders(c *gin.Context) {
	name := c.Query("name")
	status := c.Query("status")

	if status != "" && !models.OrderStatus(strings.ToUpper(status)).Valid() {
		respondError(c, http.StatusBadRequest, "Provide a valid Status")
		return
	}

	pattern := "%" + strings.ToLower(name) + "%"
	query := o.db.Model(&models.Order{}).
		Where("LOWER(retailer) LIKE ? OR LOWER(distributor) LIKE ?", pattern, pattern)
	if status != "" {
		query = query.Where("status = ?", strings.ToUpper(status))
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not search orders")
		return
	}

	respond(c, http.StatusOK, "Order(s) Fetched", PaginatedResponse{
		Data:  orders,
		Total: int64(len(orders)),
	})
}

// UpdateOrder applies a partial update. Status changes must be members
// of the vocabulary and legal moves of the state machine.
func (o *OrderController) UpdateOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid Order ID format")
		return
	}

	var order models.Order
	if err := o.db.First(&order, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Record not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Database error: "+err.Error())
		}
		return
	}

	var input orderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if input.Status != "" {
		if !input.Status.Valid() {
			respondError(c, http.StatusBadRequest, "Provide a valid Status")
			return
		}
		if !order.Status.CanTransitionTo(input.Status) {
			respondError(c, http.StatusConflict,
				"Invalid status transition from "+string(order.Status)+" to "+string(input.Status))
			return
		}
		order.Status = input.Status
	}
	if input.Payment != nil {
		if input.Payment.MeansOfPayment != "" && !input.Payment.MeansOfPayment.Valid() {
			respondError(c, http.StatusBadRequest, "Provide a valid means of payment")
			return
		}
		order.Payment = *input.Payment
	}
	if input.DispatchOperator != nil {
		order.DispatchOperator = input.DispatchOperator
	}
	if input.Items != nil {
		order.Items = input.Items
	}
	if input.CostBreakdown != nil {
		order.CostBreakdown = *input.CostBreakdown
	}

	if err := o.db.Save(&order).Error; err != nil {
		logrus.WithError(err).Error("UpdateOrder: save failed")
		respondError(c, http.StatusInternalServerError, "Could not update order")
		return
	}

	respond(c, http.StatusOK, "Order updated", order)
}

// DeleteOrder removes an order unless it is in transit. A missing
// record is not an error at this layer.
func (o *OrderController) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid Order ID format")
		return
	}

	var order models.Order
	err = o.db.First(&order, uint(id)).Error
	if err == nil && order.Status.InTransit() {
		respondError(c, http.StatusConflict, "Cannot delete an order in transit")
		return
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if err := o.db.Delete(&models.Order{}, uint(id)).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not delete order")
		return
	}

	respond(c, http.StatusOK, "Order Deleted", true)
}
