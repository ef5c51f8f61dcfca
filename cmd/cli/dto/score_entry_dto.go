package dto

// SubmitRequest carries the form fields of POST /submit
type SubmitRequest struct {
	RestaurantName string
	Link           string
	DateVisited    string // YYYY-MM-DD
	Mood           float64
	Taste          int
	Experience     int
	Value          int
	Notes          string
}

type ScoreEntryResponse struct {
	ID             int64   `json:"id"`
	RestaurantName string  `json:"restaurant_name"`
	Link           string  `json:"link"`
	DateVisited    string  `json:"date_visited"`
	Mood           float64 `json:"mood"`
	Taste          int     `json:"taste"`
	Experience     int     `json:"experience"`
	Value          int     `json:"value"`
	Notes          *string `json:"notes"`
	FinalScore     float64 `json:"final_score"`
}

type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
