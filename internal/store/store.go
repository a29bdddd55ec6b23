package store

import (
	"context"

	"github.com/aurumbay/aurumbay/internal/models"
)

// Namespace keys the single persisted state document.
const Namespace = "aurumbay_state"

// Snapshot is the entire persisted state, serialized as one document. All
// slices are insertion-ordered; notification ordering guarantees depend on
// that.
type Snapshot struct {
	Users            []models.User               `bson:"users" json:"users"`
	Notifications    []models.Notification       `bson:"notifications" json:"notifications"`
	Items            []models.InventoryItem      `bson:"items" json:"items"`
	BuyRequests      []models.BuyRequest         `bson:"buy_requests" json:"buy_requests"`
	RequestStatusLog []models.RequestStatusEntry `bson:"request_status_log" json:"request_status_log"`
	ReferralCodes    []models.ReferralCode       `bson:"referral_codes" json:"referral_codes"`
	SellerReferrals  []models.SellerReferral     `bson:"seller_referrals" json:"seller_referrals"`
	Contacts         []models.ContactRecord      `bson:"contacts" json:"contacts"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Store persists and rehydrates the whole snapshot under one namespace key.
// Load returns an empty snapshot when nothing has been written yet.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
