package models

import (
	"time"

	"github.com/google/uuid"
)

type ProductType string

const (
	ProductGold     ProductType = "gold"
	ProductSilver   ProductType = "silver"
	ProductPlatinum ProductType = "platinum"
)

type InventoryItem struct {
	ID          uuid.UUID   `bson:"id" json:"id"`
	SellerID    uuid.UUID   `bson:"seller_id" json:"seller_id"`
	ProductName string      `bson:"product_name" json:"product_name" validate:"required"`
	Description string      `bson:"description" json:"description"`
	Price       float64     `bson:"price" json:"price" validate:"gte=0"`
	Quantity    int         `bson:"quantity" json:"quantity" validate:"gte=0"`
	ProductType ProductType `bson:"product_type" json:"product_type" validate:"required"`

	// Signed offsets against the live spot price. A zero premium means that
	// side of the trade is not offered.
	BuyPremium  float64 `bson:"buy_premium" json:"buy_premium"`
	SellPremium float64 `bson:"sell_premium" json:"sell_premium"`

	IsVisible bool      `bson:"is_visible" json:"is_visible"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type ItemPatch struct {
	ProductName *string      `json:"product_name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Price       *float64     `json:"price,omitempty"`
	Quantity    *int         `json:"quantity,omitempty"`
	ProductType *ProductType `json:"product_type,omitempty"`
	BuyPremium  *float64     `json:"buy_premium,omitempty"`
	SellPremium *float64     `json:"sell_premium,omitempty"`
}

// ItemQuote is the displayed pricing for one item side. Nil means the seller
// does not offer that side (zero premium).
type ItemQuote struct {
	BuyPrice  *float64 `json:"buy_price,omitempty"`
	SellPrice *float64 `json:"sell_price,omitempty"`
}

// Quote applies the item's premiums to the live spot price for its product
// type. Presentation owns hiding the nil sides.
func (it InventoryItem) Quote(spot float64) ItemQuote {
	var q ItemQuote
	if it.BuyPremium != 0 {
		p := spot + it.BuyPremium
		q.BuyPrice = &p
	}
	if it.SellPremium != 0 {
		p := spot + it.SellPremium
		q.SellPrice = &p
	}
	return q
}
