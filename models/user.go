package models

import "time"

// User is the client-identified player profile. The id comes from the client
// and is the upsert key.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(128)" json:"id"`
	Pseudo    string    `gorm:"not null" json:"pseudo"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// AllModels lists every table the service migrates.
func AllModels() []interface{} {
	return []interface{}{
		&Establishment{},
		&Offer{},
		&User{},
		&ChallengeRun{},
	}
}
