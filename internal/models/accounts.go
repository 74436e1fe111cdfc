package models

import "gorm.io/gorm"

// Account status values shared by all user kinds.
const (
	AccountActive  = "Active"
	AccountBlocked = "Blocked"
)

// Retailer owns a store and places orders. FCMToken is the push
// notification target used by trip updates.
type Retailer struct {
	gorm.Model
	FirstName               string `json:"firstName"`
	LastName                string `json:"lastName"`
	BusinessName            string `json:"businessName"`
	Email                   string `json:"email" gorm:"unique"`
	Password                string `json:"-"`
	Phone                   string `json:"phone"`
	ProfilePhoto            string `json:"profilePhoto"`
	StoreAddress            string `json:"storeAddress"`
	StoreAddressCoordinates string `json:"storeAddressCoordinates"`
	FCMToken                string `json:"-"`
	Status                  string `json:"status" gorm:"default:'Active'"`
	Visible                 bool   `json:"visible" gorm:"default:true"`
}

// Driver is a dispatch operator. Verified flips to true only through
// an approved VERIFYDRIVER request.
type Driver struct {
	gorm.Model
	FirstName                     string `json:"firstName"`
	LastName                      string `json:"lastName"`
	Email                         string `json:"email" gorm:"unique"`
	Password                      string `json:"-"`
	Phone                         string `json:"phone"`
	ProfileImage                  string `json:"profileImage"`
	ResidentialAddress            string `json:"residentialAddress"`
	ResidentialAddressCoordinates string `json:"residentialAddressCoordinates"`
	LicenseNumber                 string `json:"licenseNumber"`
	Verified                      bool   `json:"verified" gorm:"default:false"`
	VehicleID                     uint   `json:"vehicle_id" gorm:"index"`
	Status                        string `json:"status" gorm:"default:'Active'"`
	Visible                       bool   `json:"visible" gorm:"default:true"`
}

// Distributor supplies inventory and fulfils orders.
type Distributor struct {
	gorm.Model
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"unique"`
	Password     string `json:"-"`
	Phone        string `json:"phone"`
	ProfilePhoto string `json:"profilePhoto"`
	Address      string `json:"address"`
	Status       string `json:"status" gorm:"default:'Active'"`
	Visible      bool   `json:"visible" gorm:"default:true"`
}

// Admin issues decisions on admin requests.
type Admin struct {
	gorm.Model
	Fullname string `json:"fullname"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Status   string `json:"status" gorm:"default:'Active'"`
}
