package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"restaurantscorer/internal/microservices/http-api/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ScoreEntryRepository interface {
	Create(ctx context.Context, entry *models.ScoreEntry) error
	GetByID(ctx context.Context, id int64) (*models.ScoreEntry, error)
	ListRecent(ctx context.Context, limit int) ([]models.ScoreEntry, error)
	ListHistory(ctx context.Context, sortBy models.HistorySort, limit int) ([]models.ScoreEntry, error)
	Ping(ctx context.Context) error
}

// scoreEntryRow mirrors the score_entries table created by the migrations.
type scoreEntryRow struct {
	ID             int64          `gorm:"column:id;primaryKey;autoIncrement"`
	RestaurantName string         `gorm:"column:restaurant_name;not null"`
	Link           string         `gorm:"column:link;not null"`
	DateVisited    datatypes.Date `gorm:"column:date_visited;not null"`
	Mood           float64        `gorm:"column:mood;not null"`
	Taste          int            `gorm:"column:taste;not null"`
	Experience     int            `gorm:"column:experience;not null"`
	Value          int            `gorm:"column:value;not null"`
	Notes          sql.NullString `gorm:"column:notes"`
	FinalScore     float64        `gorm:"column:final_score;not null"`
}

func (scoreEntryRow) TableName() string {
	return "score_entries"
}

func toRow(e *models.ScoreEntry) scoreEntryRow {
	row := scoreEntryRow{
		ID:             e.ID,
		RestaurantName: e.RestaurantName,
		Link:           e.Link,
		DateVisited:    datatypes.Date(calendarDate(e.DateVisited)),
		Mood:           e.Mood,
		Taste:          e.Taste,
		Experience:     e.Experience,
		Value:          e.Value,
		FinalScore:     e.FinalScore,
	}
	if e.Notes != nil {
		row.Notes = sql.NullString{String: *e.Notes, Valid: true}
	}
	return row
}

func fromRow(row scoreEntryRow) models.ScoreEntry {
	e := models.ScoreEntry{
		ID:             row.ID,
		RestaurantName: row.RestaurantName,
		Link:           row.Link,
		DateVisited:    calendarDate(time.Time(row.DateVisited)),
		Mood:           row.Mood,
		Taste:          row.Taste,
		Experience:     row.Experience,
		Value:          row.Value,
		FinalScore:     row.FinalScore,
	}
	if row.Notes.Valid {
		notes := row.Notes.String
		e.Notes = &notes
	}
	return e
}

// calendarDate drops the clock and zone so dates compare and sort as plain days.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fromRows(rows []scoreEntryRow) []models.ScoreEntry {
	entries := make([]models.ScoreEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, fromRow(row))
	}
	return entries
}

type scoreEntryRepository struct {
	db *gorm.DB
}

func NewScoreEntryRepository(db *gorm.DB) ScoreEntryRepository {
	return &scoreEntryRepository{db: db}
}

// Create inserts a new entry and sets its ID. GORM commits the insert in its
// own transaction.
func (r *scoreEntryRepository) Create(ctx context.Context, entry *models.ScoreEntry) error {
	row := toRow(entry)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create score entry: %w", err)
	}
	entry.ID = row.ID
	return nil
}

// GetByID returns gorm.ErrRecordNotFound (wrapped) when no entry has the id
func (r *scoreEntryRepository) GetByID(ctx context.Context, id int64) (*models.ScoreEntry, error) {
	var row scoreEntryRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, fmt.Errorf("get score entry %d: %w", id, err)
	}
	entry := fromRow(row)
	return &entry, nil
}

// ListRecent returns up to limit entries, newest first
func (r *scoreEntryRepository) ListRecent(ctx context.Context, limit int) ([]models.ScoreEntry, error) {
	var rows []scoreEntryRow
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list score entries: %w", err)
	}
	return fromRows(rows), nil
}

func (r *scoreEntryRepository) ListHistory(ctx context.Context, sortBy models.HistorySort, limit int) ([]models.ScoreEntry, error) {
	order := "date_visited DESC, id DESC"
	if sortBy == models.SortByScore {
		order = "final_score DESC, id DESC"
	}

	var rows []scoreEntryRow
	err := r.db.WithContext(ctx).
		Order(order).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list score history by %s: %w", sortBy, err)
	}
	return fromRows(rows), nil
}

func (r *scoreEntryRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}
