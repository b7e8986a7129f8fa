// Package domain defines the core business types for the Retro Hunter client.
package domain

import (
	"time"
)

// PlatformID is a canonical game-platform identifier.
type PlatformID string

// Platform constants. PlatformAll is the catch-all used when no alias matches.
const (
	PlatformAll          PlatformID = "all"
	PlatformPS2          PlatformID = "ps2"
	PlatformPS3          PlatformID = "ps3"
	PlatformPS4          PlatformID = "ps4"
	PlatformXbox         PlatformID = "xbox"
	PlatformXbox360      PlatformID = "xbox360"
	PlatformSwitch       PlatformID = "nintendo-switch"
	PlatformWii          PlatformID = "nintendo-wii"
	PlatformDS           PlatformID = "nintendo-ds"
	PlatformDreamcast    PlatformID = "dreamcast"
	PlatformMasterSystem PlatformID = "master-system"
	PlatformGenesis      PlatformID = "genesis"
)

// PriceCategory is a condition category a valuation can be quoted under.
type PriceCategory string

// Price category constants.
const (
	CategoryLoose   PriceCategory = "loose"
	CategoryCIB     PriceCategory = "cib"
	CategoryNew     PriceCategory = "new"
	CategoryGraded  PriceCategory = "graded"
	CategoryBoxOnly PriceCategory = "box_only"
)

// Currency is a display currency code.
type Currency string

// Supported display currencies.
const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// CompletionStatus tracks how far the owner has played a game.
type CompletionStatus string

// Completion status constants.
const (
	StatusNotStarted CompletionStatus = "not-started"
	StatusInProgress CompletionStatus = "in-progress"
	StatusCompleted  CompletionStatus = "completed"
)

// Listing is a single priced search result sourced from the eBay search
// backend. Prices are USD. Listings are immutable once created; a new search
// replaces the whole result set.
type Listing struct {
	Title    string   `json:"title"`
	Price    float64  `json:"price"`
	Link     string   `json:"link"`
	ImageURL string   `json:"image,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// PriceSnapshot is one dated, per-category price observation for a
// collection item. Snapshots are append-only; for duplicate dates the most
// recent write is authoritative.
type PriceSnapshot struct {
	Date         time.Time `json:"date"`
	LoosePrice   *float64  `json:"loosePrice,omitempty"`
	CIBPrice     *float64  `json:"cibPrice,omitempty"`
	NewPrice     *float64  `json:"newPrice,omitempty"`
	GradedPrice  *float64  `json:"gradedPrice,omitempty"`
	BoxOnlyPrice *float64  `json:"boxOnlyPrice,omitempty"`
}

// Value returns the snapshot's value for the given category, or nil when the
// snapshot carries no observation for it.
func (s *PriceSnapshot) Value(cat PriceCategory) *float64 {
	switch cat {
	case CategoryLoose:
		return s.LoosePrice
	case CategoryCIB:
		return s.CIBPrice
	case CategoryNew:
		return s.NewPrice
	case CategoryGraded:
		return s.GradedPrice
	case CategoryBoxOnly:
		return s.BoxOnlyPrice
	default:
		return nil
	}
}

// SetValue records a value for the given category.
func (s *PriceSnapshot) SetValue(cat PriceCategory, v float64) {
	switch cat {
	case CategoryLoose:
		s.LoosePrice = &v
	case CategoryCIB:
		s.CIBPrice = &v
	case CategoryNew:
		s.NewPrice = &v
	case CategoryGraded:
		s.GradedPrice = &v
	case CategoryBoxOnly:
		s.BoxOnlyPrice = &v
	}
}

// CollectionItem is a user-owned record of a game with tracked pricing.
// Persistent storage lives entirely in the backend; the client holds items
// only in a per-session cache.
type CollectionItem struct {
	ID            string           `json:"id"`
	GameTitle     string           `json:"gameTitle"`
	Platform      string           `json:"platform"`
	Condition     string           `json:"condition,omitempty"`
	PurchasePrice *float64         `json:"purchasePrice,omitempty"`
	LoosePrice    *float64         `json:"loosePrice,omitempty"`
	CIBPrice      *float64         `json:"cibPrice,omitempty"`
	NewPrice      *float64         `json:"newPrice,omitempty"`
	GradedPrice   *float64         `json:"gradedPrice,omitempty"`
	BoxOnlyPrice  *float64         `json:"boxOnlyPrice,omitempty"`
	PricingID     string           `json:"pricingId,omitempty"`
	FolderID      string           `json:"folderId,omitempty"`
	PriceHistory  []PriceSnapshot  `json:"priceHistory,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	IsWishlist    bool             `json:"isWishlist"`
	Completion    CompletionStatus `json:"completionStatus,omitempty"`
	UserID        string           `json:"userId"`
	CreatedAt     time.Time        `json:"createdAt,omitempty"`
}

// CurrentPrice returns the item's present valuation for the given category,
// or nil when none is tracked.
func (c *CollectionItem) CurrentPrice(cat PriceCategory) *float64 {
	switch cat {
	case CategoryLoose:
		return c.LoosePrice
	case CategoryCIB:
		return c.CIBPrice
	case CategoryNew:
		return c.NewPrice
	case CategoryGraded:
		return c.GradedPrice
	case CategoryBoxOnly:
		return c.BoxOnlyPrice
	default:
		return nil
	}
}

// SetCurrentPrice records the item's present valuation for a category.
func (c *CollectionItem) SetCurrentPrice(cat PriceCategory, v float64) {
	switch cat {
	case CategoryLoose:
		c.LoosePrice = &v
	case CategoryCIB:
		c.CIBPrice = &v
	case CategoryNew:
		c.NewPrice = &v
	case CategoryGraded:
		c.GradedPrice = &v
	case CategoryBoxOnly:
		c.BoxOnlyPrice = &v
	}
}

// Folder is a named, colored grouping of collection items. Deleting a folder
// must never delete its items; their folder reference becomes empty.
type Folder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	UserID      string `json:"userId"`
}

// PriceRecord is one per-category valuation returned by the pricing lookup
// service for an external pricing-source identifier.
type PriceRecord struct {
	Loose   *float64 `json:"loose,omitempty"`
	CIB     *float64 `json:"cib,omitempty"`
	New     *float64 `json:"new,omitempty"`
	Graded  *float64 `json:"graded,omitempty"`
	BoxOnly *float64 `json:"box_only,omitempty"`
}

// Value returns the record's value for the given category, or nil.
func (p *PriceRecord) Value(cat PriceCategory) *float64 {
	switch cat {
	case CategoryLoose:
		return p.Loose
	case CategoryCIB:
		return p.CIB
	case CategoryNew:
		return p.New
	case CategoryGraded:
		return p.Graded
	case CategoryBoxOnly:
		return p.BoxOnly
	default:
		return nil
	}
}

// User is the authenticated account all client-side entities are scoped to.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Categories lists every price category in display order.
func Categories() []PriceCategory {
	return []PriceCategory{
		CategoryLoose,
		CategoryCIB,
		CategoryNew,
		CategoryGraded,
		CategoryBoxOnly,
	}
}
