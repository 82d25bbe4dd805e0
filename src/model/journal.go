package model

import "time"

const (
	MoodConfident  = "Confident"
	MoodNeutral    = "Neutral"
	MoodAnxious    = "Anxious"
	MoodFrustrated = "Frustrated"
	MoodExcited    = "Excited"
)

// ValidMood reports whether mood is one of the closed set of moods.
func ValidMood(mood string) bool {
	switch mood {
	case MoodConfident, MoodNeutral, MoodAnxious, MoodFrustrated, MoodExcited:
		return true
	}
	return false
}

// JournalEntry is a free-form journal note, optionally linked to a trade.
type JournalEntry struct {
	ID       string    `gorm:"primaryKey;size:36" json:"id"`
	UserID   uint      `gorm:"index" json:"user_id"`
	Date     time.Time `gorm:"index" json:"date"`
	Title    string    `gorm:"size:200" json:"title"`
	Content  string    `json:"content"`
	Mood     string    `gorm:"size:20" json:"mood"`
	Category string    `gorm:"size:60" json:"category,omitempty"`
	Asset    string    `gorm:"size:20" json:"asset,omitempty"`
	Tags     []string  `gorm:"serializer:json" json:"tags"`
	Image    string    `json:"image,omitempty"`

	// RelatedTradeID is a weak reference. The trade it points to may have
	// been deleted; lookups tolerate the dangling id.
	RelatedTradeID string `gorm:"size:36;index" json:"related_trade_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName allows you to control the exact table name for journal entries.
func (JournalEntry) TableName() string {
	return "journal_entries"
}
