package model

import "time"

const (
	TradeDirectionLong  = "LONG"
	TradeDirectionShort = "SHORT"
)

// Trade represents a single closed trade recorded in the journal.
//
// Pips and Profit are derived once at creation time from the price fields
// and stored redundantly. Editing a trade later does not recompute them.
type Trade struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Pair        string    `gorm:"size:20;not null" json:"pair"`
	Direction   string    `gorm:"size:5;not null" json:"direction"`
	EntryPrice  float64   `json:"entry_price"`
	ExitPrice   float64   `json:"exit_price"`
	Size        float64   `json:"size"`
	EntryDate   time.Time `gorm:"index" json:"entry_date"`
	ExitDate    time.Time `json:"exit_date"`
	Pips        float64   `json:"pips"`
	Profit      float64   `json:"profit"`
	StopLoss    string    `gorm:"size:30" json:"stop_loss,omitempty"`
	TakeProfit  string    `gorm:"size:30" json:"take_profit,omitempty"`
	Commission  string    `gorm:"size:30" json:"commission,omitempty"`
	Swap        string    `gorm:"size:30" json:"swap,omitempty"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	Setup       string    `gorm:"size:60" json:"setup,omitempty"`
	Screenshots []string  `gorm:"serializer:json" json:"screenshots"`
	Notes       string    `json:"notes,omitempty"`
	Rating      int       `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName allows you to control the exact table name for trades.
func (Trade) TableName() string {
	return "trades"
}
