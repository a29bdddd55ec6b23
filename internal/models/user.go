package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var Validate = validator.New()

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleSeller   UserRole = "seller"
	RoleCustomer UserRole = "customer"
	RoleBuyer    UserRole = "buyer"
)

// ReservedAdminUsername may be held by at most one user, ever.
const ReservedAdminUsername = "admin"

func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleCustomer, RoleBuyer:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email" validate:"required,email"`
	Username     string    `bson:"username" json:"username" validate:"required,min=3"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         UserRole  `bson:"role" json:"role"`
	FullName     string    `bson:"fullname" json:"fullname"`
	PhoneNumber  string    `bson:"phone_number" json:"phone_number"`
	Location     string    `bson:"location" json:"location"`

	// Seller-only brand fields.
	BrandName    string `bson:"brand_name" json:"brand_name,omitempty"`
	BrandTagline string `bson:"brand_tagline" json:"brand_tagline,omitempty"`

	IsPremium       bool   `bson:"is_premium" json:"is_premium"`
	BuyRequestCount int    `bson:"buy_request_count" json:"buy_request_count"`
	ReferralCode    string `bson:"referral_code,omitempty" json:"referral_code,omitempty"`
	IsActive        bool   `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Sanitized returns a copy safe to hand to callers (no credential material).
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

type SignupRequest struct {
	Email        string   `json:"email" validate:"required,email"`
	Username     string   `json:"username" validate:"required,min=3"`
	Password     string   `json:"password" validate:"required,min=8"`
	Role         UserRole `json:"role"`
	FullName     string   `json:"fullname"`
	PhoneNumber  string   `json:"phone_number"`
	Location     string   `json:"location"`
	BrandName    string   `json:"brand_name"`
	BrandTagline string   `json:"brand_tagline"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserPatch carries the mutable profile fields; nil means "leave unchanged".
type UserPatch struct {
	Email        *string   `json:"email,omitempty"`
	Username     *string   `json:"username,omitempty"`
	Role         *UserRole `json:"role,omitempty"`
	FullName     *string   `json:"fullname,omitempty"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	Location     *string   `json:"location,omitempty"`
	BrandName    *string   `json:"brand_name,omitempty"`
	BrandTagline *string   `json:"brand_tagline,omitempty"`
	IsActive     *bool     `json:"is_active,omitempty"`
}
