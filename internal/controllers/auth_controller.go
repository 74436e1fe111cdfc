package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storedash/internal/middleware"
	"storedash/internal/models"
)

// AuthController handles platform-scoped signup and login. Platform
// selects the account collection: Retailer, Driver, Distributor or
// Admin.
type AuthController struct {
	db *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type signupInput struct {
	Platform                string `json:"platform" binding:"required"`
	Email                   string `json:"email" binding:"required,email"`
	Password                string `json:"password" binding:"required"`
	Phone                   string `json:"phone"`
	FirstName               string `json:"firstName"`
	LastName                string `json:"lastName"`
	Fullname                string `json:"fullname"`
	Name                    string `json:"name"`
	BusinessName            string `json:"businessName"`
	StoreAddress            string `json:"storeAddress"`
	StoreAddressCoordinates string `json:"storeAddressCoordinates"`
	Address                 string `json:"address"`
	LicenseNumber           string `json:"licenseNumber"`
}

type loginInput struct {
	Platform string `json:"platform" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func normalizePlatform(p string) (string, error) {
	switch strings.ToLower(p) {
	case "retailer":
		return "retailer", nil
	case "driver":
		return "driver", nil
	case "distributor":
		return "distributor", nil
	case "admin":
		return "admin", nil
	}
	return "", errors.New(`"platform" should be any of these: Retailer|Driver|Distributor|Admin`)
}

// Signup creates an account on the requested platform and returns a
// token plus the stored profile.
func (a *AuthController) Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	platform, err := normalizePlatform(input.Platform)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if platform == "retailer" && input.StoreAddressCoordinates != "" {
		if err := models.ValidateCoordinates(input.StoreAddressCoordinates); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not hash password")
		return
	}

	var id uint
	var profile interface{}

	switch platform {
	case "retailer":
		retailer := models.Retailer{
			FirstName:               input.FirstName,
			LastName:                input.LastName,
			BusinessName:            input.BusinessName,
			Email:                   input.Email,
			Password:                string(hashed),
			Phone:                   input.Phone,
			StoreAddress:            input.StoreAddress,
			StoreAddressCoordinates: input.StoreAddressCoordinates,
		}
		err = a.db.Create(&retailer).Error
		id, profile = retailer.ID, retailer
	case "driver":
		driver := models.Driver{
			FirstName:          input.FirstName,
			LastName:           input.LastName,
			Email:              input.Email,
			Password:           string(hashed),
			Phone:              input.Phone,
			ResidentialAddress: input.Address,
			LicenseNumber:      input.LicenseNumber,
		}
		err = a.db.Create(&driver).Error
		id, profile = driver.ID, driver
	case "distributor":
		distributor := models.Distributor{
			Name:     input.Name,
			Email:    input.Email,
			Password: string(hashed),
			Phone:    input.Phone,
			Address:  input.Address,
		}
		err = a.db.Create(&distributor).Error
		id, profile = distributor.ID, distributor
	case "admin":
		admin := models.Admin{
			Fullname: input.Fullname,
			Email:    input.Email,
			Password: string(hashed),
			Phone:    input.Phone,
		}
		err = a.db.Create(&admin).Error
		id, profile = admin.ID, admin
	}

	if err != nil {
		if isDuplicate(err) {
			respondError(c, http.StatusConflict, "email already in use")
			return
		}
		logrus.WithError(err).Error("Signup: create failed")
		respondError(c, http.StatusInternalServerError, "could not create account")
		return
	}

	token, err := middleware.GenerateToken(id, platform)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not generate token")
		return
	}

	respond(c, http.StatusCreated, "Account Created", gin.H{
		"token": token,
		"user":  profile,
	})
}

// Login verifies credentials against the platform's collection.
func (a *AuthController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	platform, err := normalizePlatform(input.Platform)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var id uint
	var hashed string
	var profile interface{}

	switch platform {
	case "retailer":
		var retailer models.Retailer
		err = a.db.Where("email = ?", input.Email).First(&retailer).Error
		id, hashed, profile = retailer.ID, retailer.Password, retailer
	case "driver":
		var driver models.Driver
		err = a.db.Where("email = ?", input.Email).First(&driver).Error
		id, hashed, profile = driver.ID, driver.Password, driver
	case "distributor":
		var distributor models.Distributor
		err = a.db.Where("email = ?", input.Email).First(&distributor).Error
		id, hashed, profile = distributor.ID, distributor.Password, distributor
	case "admin":
		var admin models.Admin
		err = a.db.Where("email = ?", input.Email).First(&admin).Error
		id, hashed, profile = admin.ID, admin.Password, admin
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusUnauthorized, "user not found or invalid credentials")
		} else {
			respondError(c, http.StatusInternalServerError, "database error: "+err.Error())
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(input.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "incorrect password")
		return
	}

	token, err := middleware.GenerateToken(id, platform)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not generate token")
		return
	}

	respond(c, http.StatusOK, "Login Successful", gin.H{
		"token": token,
		"user":  profile,
	})
}
