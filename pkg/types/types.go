// Package domain defines the core business types for the eBay listing engine.
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Environment identifies which eBay environment an account or listing lives in.
// Sandbox and production use disjoint endpoints and credentials.
type Environment string

// Environment constants.
const (
	EnvSandbox    Environment = "sandbox"
	EnvProduction Environment = "production"
)

// Valid reports whether e is a known environment.
func (e Environment) Valid() bool {
	return e == EnvSandbox || e == EnvProduction
}

// ParseEnvironment converts a string to an Environment.
func ParseEnvironment(s string) (Environment, error) {
	e := Environment(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown environment %q (want sandbox or production)", s)
	}
	return e, nil
}

// AccountKey derives the unique key for a seller identity in an environment.
func AccountKey(userID string, env Environment) string {
	return userID + ":" + string(env)
}

// Account is one connected seller identity.
type Account struct {
	AccountKey   string      `json:"account_key"             db:"account_key"`
	UserID       string      `json:"user_id"                 db:"user_id"`
	Username     string      `json:"username"                db:"username"`
	Environment  Environment `json:"environment"             db:"environment"`
	AccessToken  string      `json:"-"                       db:"access_token"`
	RefreshToken string      `json:"-"                       db:"refresh_token"`
	TokenExpiry  time.Time   `json:"token_expiry"            db:"token_expiry"`
	NeedsReauth  bool        `json:"needs_reauth"            db:"needs_reauth"`
	ReauthReason string      `json:"reauth_reason,omitempty" db:"reauth_reason"`
	ConnectedAt  time.Time   `json:"connected_at"            db:"connected_at"`
	LastUsedAt   *time.Time  `json:"last_used_at,omitempty"  db:"last_used_at"`
}

// TokenSet is the mutable credential portion of an Account.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// ListingStatus is the position of a listing in the publish state machine.
type ListingStatus string

// Listing status constants. Listed and Failed are terminal; PersistPending is
// reported to callers when the listing is live but the final local write has
// not landed yet.
const (
	StatusDraft            ListingStatus = "draft"
	StatusLocationEnsured  ListingStatus = "location_ensured"
	StatusImagesAttached   ListingStatus = "images_attached"
	StatusInventoryCreated ListingStatus = "inventory_created"
	StatusOfferCreated     ListingStatus = "offer_created"
	StatusListed           ListingStatus = "listed"
	StatusFailed           ListingStatus = "failed"
	StatusPersistPending   ListingStatus = "persist_pending"
)

// Terminal reports whether no further pipeline stage may run from s.
func (s ListingStatus) Terminal() bool {
	return s == StatusListed || s == StatusFailed
}

// ConditionCode is the eBay inventory condition enum.
type ConditionCode string

// Condition codes accepted by the Sell Inventory API.
const (
	ConditionNew             ConditionCode = "NEW"
	ConditionLikeNew         ConditionCode = "LIKE_NEW"
	ConditionUsedExcellent   ConditionCode = "USED_EXCELLENT"
	ConditionUsedVeryGood    ConditionCode = "USED_VERY_GOOD"
	ConditionUsedGood        ConditionCode = "USED_GOOD"
	ConditionUsedAcceptable  ConditionCode = "USED_ACCEPTABLE"
	ConditionForPartsOrNotOK ConditionCode = "FOR_PARTS_OR_NOT_WORKING"
)

// ListingRequest is the input to a publish attempt. It is never persisted on
// its own; the pipeline turns it into a Listing.
type ListingRequest struct {
	CardID      string          `json:"card_id"`
	SKU         string          `json:"sku,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Condition   string          `json:"condition"`
	CategoryID  string          `json:"category_id"`
	ImageRefs   []string        `json:"image_refs"`
	AccountKey  string          `json:"account_key,omitempty"`
}

// ListingCache holds marketplace metrics refreshed by the syncer.
type ListingCache struct {
	WatchCount    int              `json:"watch_count"              db:"watch_count"`
	ViewCount     int              `json:"view_count"               db:"view_count"`
	BidCount      int              `json:"bid_count"                db:"bid_count"`
	CurrentPrice  *decimal.Decimal `json:"current_price,omitempty"  db:"current_price"`
	TimeRemaining string           `json:"time_remaining,omitempty" db:"time_remaining"`
	LastSyncedAt  *time.Time       `json:"last_synced_at,omitempty" db:"last_synced_at"`
}

// Listing is the durable record of a publish attempt and its result.
type Listing struct {
	SKU           string        `json:"sku"                       db:"sku"`
	CardID        string        `json:"card_id"                   db:"card_id"`
	RemoteItemID  *string       `json:"remote_item_id,omitempty"  db:"remote_item_id"`
	RemoteOfferID *string       `json:"remote_offer_id,omitempty" db:"remote_offer_id"`
	Status        ListingStatus `json:"status"                    db:"status"`
	Environment   Environment   `json:"environment"               db:"environment"`

	// Attribution is copied at creation time and survives account removal.
	AccountKey      string `json:"account_key"      db:"account_key"`
	AccountUserID   string `json:"account_user_id"  db:"account_user_id"`
	AccountUsername string `json:"account_username" db:"account_username"`

	Title       string          `json:"title"                  db:"title"`
	Description string          `json:"description"            db:"description"`
	Price       decimal.Decimal `json:"price"                  db:"price"`
	Condition   ConditionCode   `json:"condition"              db:"condition"`
	CategoryID  string          `json:"category_id"            db:"category_id"`
	ImageURLs   []string        `json:"image_urls,omitempty"   db:"image_urls"`
	LocationKey string          `json:"location_key,omitempty" db:"location_key"`
	ListingURL  string          `json:"listing_url,omitempty"  db:"listing_url"`

	ErrorMessage string `json:"error_message,omitempty" db:"error_message"`
	FailedStage  string `json:"failed_stage,omitempty"  db:"failed_stage"`

	CreatedAt   time.Time  `json:"created_at"          db:"created_at"`
	ListedAt    *time.Time `json:"listed_at,omitempty" db:"listed_at"`
	LastUpdated time.Time  `json:"last_updated"        db:"last_updated"`

	Cache ListingCache `json:"cache"`
}

// SyncStatus is the state of one sync attempt.
type SyncStatus string

// Sync status constants.
const (
	SyncInProgress SyncStatus = "in_progress"
	SyncCompleted  SyncStatus = "completed"
	SyncFailed     SyncStatus = "failed"
)

// SyncLogEntry records a single sync attempt for an account.
type SyncLogEntry struct {
	SyncID       string     `json:"sync_id"                 db:"sync_id"`
	AccountKey   string     `json:"account_key"             db:"account_key"`
	StartedAt    time.Time  `json:"started_at"              db:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"  db:"completed_at"`
	ItemsSynced  int        `json:"items_synced"            db:"items_synced"`
	APICallsMade int        `json:"api_calls_made"          db:"api_calls_made"`
	Status       SyncStatus `json:"status"                  db:"status"`
	ErrorMessage string     `json:"error_message,omitempty" db:"error_message"`
}
