package dto

import (
	"strconv"
	"strings"
	"time"

	"restaurantscorer/internal/apperrors"
	"restaurantscorer/internal/microservices/http-api/models"
)

const DateLayout = "2006-01-02"

// SubmitScoreForm binds the form-encoded body of POST /submit.
// Numbers are bound as text so an empty value fails "required"; ToModel
// parses them. Ranges are enforced by the service.
type SubmitScoreForm struct {
	RestaurantName string    `form:"restaurant_name" binding:"required"`
	Link           string    `form:"link" binding:"required"`
	DateVisited    time.Time `form:"date_visited" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	Mood           string    `form:"mood" binding:"required"`
	Taste          string    `form:"taste" binding:"required"`
	Experience     string    `form:"experience" binding:"required"`
	Value          string    `form:"value" binding:"required"`
	Notes          *string   `form:"notes"`
}

// ToModel returns a validation error when a number does not parse
func (f SubmitScoreForm) ToModel() (models.ScoreEntry, error) {
	e := models.ScoreEntry{
		RestaurantName: f.RestaurantName,
		Link:           f.Link,
		DateVisited:    f.DateVisited,
		Notes:          f.Notes,
	}

	mood, err := strconv.ParseFloat(strings.TrimSpace(f.Mood), 64)
	if err != nil {
		return models.ScoreEntry{}, apperrors.Validationf("mood must be a number, got %q", f.Mood)
	}
	e.Mood = mood

	ratings := []struct {
		name   string
		raw    string
		target *int
	}{
		{"taste", f.Taste, &e.Taste},
		{"experience", f.Experience, &e.Experience},
		{"value", f.Value, &e.Value},
	}
	for _, r := range ratings {
		v, err := strconv.Atoi(strings.TrimSpace(r.raw))
		if err != nil {
			return models.ScoreEntry{}, apperrors.Validationf("%s must be a whole number, got %q", r.name, r.raw)
		}
		*r.target = v
	}
	return e, nil
}

// ScoreEntryResponse is the JSON shape of one entry
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

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

func FromModelToScoreEntryResponse(e models.ScoreEntry) ScoreEntryResponse {
	return ScoreEntryResponse{
		ID:             e.ID,
		RestaurantName: e.RestaurantName,
		Link:           e.Link,
		DateVisited:    e.DateVisited.Format(DateLayout),
		Mood:           e.Mood,
		Taste:          e.Taste,
		Experience:     e.Experience,
		Value:          e.Value,
		Notes:          e.Notes,
		FinalScore:     e.FinalScore,
	}
}

func FromModelsToScoreEntryResponses(entries []models.ScoreEntry) []ScoreEntryResponse {
	resp := make([]ScoreEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, FromModelToScoreEntryResponse(e))
	}
	return resp
}
