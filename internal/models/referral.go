package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MaxSellerReferrals bounds how many sellers one customer may follow.
	MaxSellerReferrals = 15

	// PromoCodeValidity is the redemption window for promotional codes.
	PromoCodeValidity = 30 * 24 * time.Hour
)

// ReferralCode is a single-use promotional code; redemption upgrades the
// redeeming user to premium.
type ReferralCode struct {
	ID        uuid.UUID  `bson:"id" json:"id"`
	Code      string     `bson:"code" json:"code"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time  `bson:"expires_at" json:"expires_at"`
	IsUsed    bool       `bson:"is_used" json:"is_used"`
	UsedBy    *uuid.UUID `bson:"used_by,omitempty" json:"used_by,omitempty"`
	UsedAt    *time.Time `bson:"used_at,omitempty" json:"used_at,omitempty"`
}

func (rc ReferralCode) Expired(now time.Time) bool {
	return now.After(rc.ExpiresAt)
}

// SellerReferral links a customer to a seller they follow.
type SellerReferral struct {
	ID           uuid.UUID `bson:"id" json:"id"`
	CustomerID   uuid.UUID `bson:"customer_id" json:"customer_id"`
	SellerID     uuid.UUID `bson:"seller_id" json:"seller_id"`
	ReferralCode string    `bson:"referral_code" json:"referral_code"`
	AddedAt      time.Time `bson:"added_at" json:"added_at"`
}
