package models

import "time"

// ScoreEntry is one recorded restaurant visit. Entries are immutable once stored.
type ScoreEntry struct {
	ID             int64     `json:"id"`
	RestaurantName string    `json:"restaurant_name"`
	Link           string    `json:"link"`
	DateVisited    time.Time `json:"date_visited"`
	Mood           float64   `json:"mood"`
	Taste          int       `json:"taste"`
	Experience     int       `json:"experience"`
	Value          int       `json:"value"`
	Notes          *string   `json:"notes"`
	FinalScore     float64   `json:"final_score"`
}

// HistorySort selects the ordering of the history listing.
type HistorySort string

const (
	SortByDate  HistorySort = "date"
	SortByScore HistorySort = "score"
)

// Valid reports whether s is a supported ordering.
func (s HistorySort) Valid() bool {
	return s == SortByDate || s == SortByScore
}
