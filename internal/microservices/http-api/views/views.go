// Package views holds the HTML page and fragments served to the browser.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"time"
)

const (
	IndexPage      = "index.html"
	SubmitSuccess  = "submit_success.html"
	SubmitError    = "submit_error.html"
	HistoryListing = "history.html"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"score": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"mood":  func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"visited": func(t time.Time) string {
		return t.Format("January 02, 2006")
	},
}

// Templates parses every embedded template. The result is meant for
// gin's Engine.SetHTMLTemplate.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// MustTemplates is Templates that panics on a parse error, for test setup.
func MustTemplates() *template.Template {
	tmpl, err := Templates()
	if err != nil {
		panic(err)
	}
	return tmpl
}

// SuccessData feeds SubmitSuccess
type SuccessData struct {
	RestaurantName string
	FinalScore     float64
}

type ErrorData struct {
	Message string
}

// HistoryData feeds HistoryListing
type HistoryData struct {
	SortBy  string
	Entries []HistoryEntry
}

type HistoryEntry struct {
	RestaurantName string
	Link           string
	DateVisited    time.Time
	FinalScore     float64
	Taste          int
	Experience     int
	Value          int
	Mood           float64
	Notes          string
}

// IndexData feeds IndexPage
type IndexData struct {
	MinRating int
	MaxRating int
}
