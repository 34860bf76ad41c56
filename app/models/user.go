package models

import "gorm.io/gorm"

// Roles a user account can hold. A seller account keeps its customer
// capabilities; the role only unlocks the seller surface.
const (
	RoleUser   = "user"
	RoleSeller = "seller"
)

// User is the primary user model.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Role     string `gorm:"size:50;default:user" json:"role"`
}

// Profile holds the optional billing/contact details a user maintains
// separately from their credentials. One row per user, created lazily.
type Profile struct {
	gorm.Model
	UserID       uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Phone        string `gorm:"size:30" json:"phone"`
	Address      string `gorm:"size:255" json:"address"`
	City         string `gorm:"size:100" json:"city"`
	Country      string `gorm:"size:100" json:"country"`
	Postcode     string `gorm:"size:20" json:"postcode"`
	ProfileImage string `gorm:"size:255" json:"profile_image"`
}
