package models

import "time"

// Offer is a merchant-posted challenge tied to a location and a reward.
// Offers are managed by the merchant side; this service only reads them.
type Offer struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	EstablishmentID      *uint     `gorm:"index" json:"establishment_id,omitempty"`
	Title                string    `gorm:"not null" json:"title"`
	Description          string    `gorm:"type:text" json:"description"`
	Category             string    `gorm:"index" json:"category"`
	Latitude             float64   `gorm:"not null" json:"latitude"`
	Longitude            float64   `gorm:"not null" json:"longitude"`
	DurationLimitSeconds int       `json:"duration_limit_seconds"`
	RewardDescription    string    `gorm:"type:text" json:"reward_description"`
	City                 string    `gorm:"index" json:"city"`
	CreatedAt            time.Time `json:"created_at" gorm:"autoCreateTime"`
	Active               bool      `gorm:"not null;index" json:"active"`
}
