package database

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"restaurantscorer/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_SQLiteFileCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "food.db")
	cfg := &config.Config{DBDriver: DriverSQLite, DatabaseURL: path, DBMaxOpenConns: 4}

	db, err := Open(cfg, discardLogger())
	require.NoError(t, err)
	defer Close(db)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "database file should be created with its parent directory")
	assert.True(t, db.Migrator().HasTable("score_entries"))

	var indexes int64
	require.NoError(t, db.Raw(
		"SELECT count(*) FROM sqlite_master WHERE type = 'index' AND tbl_name = 'score_entries' AND name LIKE 'idx_score_entries_%'",
	).Scan(&indexes).Error)
	assert.Equal(t, int64(2), indexes)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpen_ReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "food.db")
	cfg := &config.Config{DBDriver: DriverSQLite, DatabaseURL: path}

	first, err := Open(cfg, discardLogger())
	require.NoError(t, err)
	require.NoError(t, first.Exec(
		`INSERT INTO score_entries (restaurant_name, link, date_visited, mood, taste, experience, value, final_score)
		 VALUES ('Noodle Bar', 'https://maps.example/noodle', '2024-05-01', 1.0, 8, 7, 9, 24.0)`).Error)
	require.NoError(t, Close(first))

	second, err := Open(cfg, discardLogger())
	require.NoError(t, err)
	defer Close(second)

	var count int64
	require.NoError(t, second.Table("score_entries").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpen_SchemaRejectsOutOfRangeRatings(t *testing.T) {
	cfg := &config.Config{DBDriver: DriverSQLite, DatabaseURL: filepath.Join(t.TempDir(), "food.db")}
	db, err := Open(cfg, discardLogger())
	require.NoError(t, err)
	defer Close(db)

	err = db.Exec(
		`INSERT INTO score_entries (restaurant_name, link, date_visited, mood, taste, experience, value, final_score)
		 VALUES ('Noodle Bar', 'https://maps.example/noodle', '2024-05-01', 1.0, 11, 7, 9, 27.0)`).Error
	assert.Error(t, err)
}

func TestOpen_InMemory(t *testing.T) {
	cfg := &config.Config{DBDriver: DriverSQLite, DatabaseURL: ":memory:"}
	db, err := Open(cfg, discardLogger())
	require.NoError(t, err)
	defer Close(db)

	assert.True(t, db.Migrator().HasTable("score_entries"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "mysql", DatabaseURL: "root@/scores"}
	_, err := Open(cfg, discardLogger())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpen_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("Skipping postgres test - TEST_POSTGRES_DSN not set")
	}
	cfg := &config.Config{DBDriver: DriverPostgres, DatabaseURL: dsn, DBMaxOpenConns: 5}

	db, err := Open(cfg, discardLogger())
	require.NoError(t, err)
	defer Close(db)

	assert.True(t, db.Migrator().HasTable("score_entries"))
}

func TestSqliteDSN(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"file path", filepath.Join(dir, "a.db"), filepath.Join(dir, "a.db") + "?_busy_timeout=5000&_foreign_keys=on"},
		{"memory", ":memory:", ":memory:?_busy_timeout=5000&_foreign_keys=on"},
		{"uri with params", "file:scores?mode=memory&cache=shared", "file:scores?mode=memory&cache=shared&_busy_timeout=5000&_foreign_keys=on"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := sqliteDSN(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dsn)
		})
	}
}
