package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	// StatusCreatedLocally means the row exists locally but no remote sync
	// has been attempted successfully yet.
	StatusCreatedLocally ProductStatus = "created_locally"
	// StatusSynced means the product's storefront mirror is known consistent.
	StatusSynced ProductStatus = "synced_to_woocommerce"
	// StatusSyncFailed means the last remote call for this product failed.
	StatusSyncFailed ProductStatus = "sync_failed"
)

type Product struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Status      ProductStatus   `json:"status"`
	// WooCommerceID is the product id on the storefront. It is non-nil only
	// after a successful remote create.
	WooCommerceID *int64    `json:"woocommerce_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
