package model

import "time"

// UserSettings holds the per-user preference bundle. There is exactly one
// row per user; updates overwrite the whole row.
type UserSettings struct {
	UserID          uint      `gorm:"primaryKey" json:"user_id"`
	AccountCurrency string    `gorm:"size:10" json:"account_currency"`
	InitialBalance  float64   `json:"initial_balance"`
	RiskPercentage  float64   `json:"risk_percentage"`
	DarkMode        bool      `json:"dark_mode"`
	DefaultPairs    []string  `gorm:"serializer:json" json:"default_pairs"`
	Tags            []string  `gorm:"serializer:json" json:"tags"`
	Setups          []string  `gorm:"serializer:json" json:"setups"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName allows you to control the exact table name for user settings.
func (UserSettings) TableName() string {
	return "user_settings"
}

// DefaultSettings returns the settings bundle used before a user has ever
// saved preferences.
func DefaultSettings(userID uint) UserSettings {
	return UserSettings{
		UserID:          userID,
		AccountCurrency: "USD",
		InitialBalance:  100,
		RiskPercentage:  1,
		DarkMode:        false,
		DefaultPairs:    []string{},
		Tags:            []string{},
		Setups:          []string{},
	}
}

// UpdateSettingsPayload carries a partial settings update. Nil fields keep
// the current value; present fields replace it wholesale.
type UpdateSettingsPayload struct {
	AccountCurrency *string   `json:"account_currency,omitempty"`
	InitialBalance  *float64  `json:"initial_balance,omitempty"`
	RiskPercentage  *float64  `json:"risk_percentage,omitempty"`
	DarkMode        *bool     `json:"dark_mode,omitempty"`
	DefaultPairs    *[]string `json:"default_pairs,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	Setups          *[]string `json:"setups,omitempty"`
}
