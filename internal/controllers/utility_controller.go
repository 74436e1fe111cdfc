package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"storedash/internal/models"
)

// UtilityController is the thin passthrough tier: banks, vehicles and
// inventory go straight to the store with duplicate detection and no
// workflow in between.
type UtilityController struct {
	db *gorm.DB
}

func NewUtilityController(db *gorm.DB) *UtilityController {
	return &UtilityController{db: db}
}

// --- Banks ---

func (u *UtilityController) CreateBank(c *gin.Context) {
	var bank models.Bank
	if err := c.ShouldBindJSON(&bank); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := u.db.Create(&bank).Error; err != nil {
		if isDuplicate(err) {
			respondError(c, http.StatusConflict, "Bank already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "Could not create bank")
		return
	}
	respond(c, http.StatusCreated, "Bank Created", bank)
}

func (u *UtilityController) ListBanks(c *gin.Context) {
	var banks []models.Bank
	if err := u.db.Find(&banks).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not list banks")
		return
	}
	respond(c, http.StatusOK, "Banks Fetched", banks)
}

func (u *UtilityController) DeleteBank(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid Bank ID format")
		return
	}
	if err := u.db.Delete(&models.Bank{}, uint(id)).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not delete bank")
		return
	}
	respond(c, http.StatusOK, "Bank Deleted", true)
}

// --- Vehicles ---

func (u *UtilityController) CreateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := u.db.Create(&vehicle).Error; err != nil {
		if isDuplicate(err) {
			respondError(c, http.StatusConflict, "Vehicle already registered")
			return
		}
		respondError(c, http.StatusInternalServerError, "Could not create vehicle")
		return
	}
	respond(c, http.StatusCreated, "Vehicle Created", vehicle)
}

func (u *UtilityController) ListVehicles(c *gin.Context) {
	query := u.db.Model(&models.Vehicle{})
	if driverID := c.Query("driver"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	var vehicles []models.Vehicle
	if err := query.Find(&vehicles).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not list vehicles")
		return
	}
	respond(c, http.StatusOK, "Vehicles Fetched", vehicles)
}

func (u *UtilityController) UpdateVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid Vehicle ID format")
		return
	}

	var vehicle models.Vehicle
	if err := u.db.First(&vehicle, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Record not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Database error: "+err.Error())
		}
		return
	}

	var input struct {
		Model       *string `json:"model"`
		Make        *string `json:"make"`
		NumberPlate *string `json:"numberPlate"`
		Color       *string `json:"color"`
		DriverID    *uint   `json:"driver_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.NumberPlate != nil {
		vehicle.NumberPlate = *input.NumberPlate
	}
	if input.Color != nil {
		vehicle.Color = *input.Color
	}
	if input.DriverID != nil {
		vehicle.DriverID = *input.DriverID
	}

	if err := u.db.Save(&vehicle).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not update vehicle")
		return
	}
	respond(c, http.StatusOK, "Vehicle updated", vehicle)
}

func (u *UtilityController) DeleteVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid Vehicle ID format")
		return
	}
	if err := u.db.Delete(&models.Vehicle{}, uint(id)).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not delete vehicle")
		return
	}
	respond(c, http.StatusOK, "Vehicle Deleted", true)
}

// --- Inventory ---

func (u *UtilityController) CreateInventory(c *gin.Context) {
	var item models.Inventory
	if err := c.ShouldBindJSON(&item); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := u.db.Create(&item).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not create inventory")
		return
	}
	respond(c, http.StatusCreated, "Inventory Created", item)
}

func (u *UtilityController) ListInventory(c *gin.Context) {
	skip, limit := pagination(c)

	query := u.db.Model(&models.Inventory{})
	if distributorID := c.Query("distributor"); distributorID != "" {
		query = query.Where("distributor_id = ?", distributorID)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not count inventory")
		return
	}

	var items []models.Inventory
	listQuery := query.Offset(skip)
	if limit > 0 {
		listQuery = listQuery.Limit(limit)
	}
	if err := listQuery.Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not list inventory")
		return
	}

	respond(c, http.StatusOK, "Inventory Fetched", PaginatedResponse{
		Data:  items,
		Skip:  skip,
		Limit: limit,
		Total: total,
	})
}

func (u *UtilityController) SearchInventory(c *gin.Context) {
	pattern := "%" + strings.ToLower(c.Query("name")) + "%"
	var items []models.Inventory
	if err := u.db.
		Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(brand) LIKE ?",
			pattern, pattern, pattern).
		Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not search inventory")
		return
	}
	respond(c, http.StatusOK, "Inventory Fetched", PaginatedResponse{
		Data:  items,
		Total: int64(len(items)),
	})
}

func (u *UtilityController) UpdateInventory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid Inventory ID format")
		return
	}

	var item models.Inventory
	if err := u.db.First(&item, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Record not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Database error: "+err.Error())
		}
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Quantity    *int     `json:"quantity"`
		Image       *string  `json:"image"`
		Category    *string  `json:"category"`
		Brand       *string  `json:"brand"`
		Visible     *bool    `json:"visible"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.Image != nil {
		item.Image = *input.Image
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Brand != nil {
		item.Brand = *input.Brand
	}
	if input.Visible != nil {
		item.Visible = *input.Visible
	}

	if err := u.db.Save(&item).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not update inventory")
		return
	}
	respond(c, http.StatusOK, "Inventory updated", item)
}

func (u *UtilityController) DeleteInventory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid Inventory ID format")
		return
	}
	if err := u.db.Delete(&models.Inventory{}, uint(id)).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Could not delete inventory")
		return
	}
	respond(c, http.StatusOK, "Inventory Deleted", true)
}

func isDuplicate(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
