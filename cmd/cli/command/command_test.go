package command

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func newAPI(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /submit", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div><span class="message">Restaurant "Diner" saved with a score of 24.00</span></div>`))
	})
	mux.HandleFunc("GET /entries", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") == "1" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"id":1,"restaurant_name":"Diner","date_visited":"2024-05-01","mood":1,"taste":8,"experience":7,"value":9,"final_score":24}]`))
	})
	mux.HandleFunc("GET /entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"restaurant_name":"Diner","link":"https://maps.example/diner","date_visited":"2024-05-01","mood":1,"taste":8,"experience":7,"value":9,"notes":"pie","final_score":24}`))
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy"}`))
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ready"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestSubmitCommand(t *testing.T) {
	api := newAPI(t)

	out, err := run(t, "--api", api, "submit", "--name", "Diner", "--link", "https://maps.example/diner",
		"--date", "2024-05-01", "--taste", "8", "--experience", "7", "--value", "9")
	require.NoError(t, err)
	assert.Contains(t, out, `Restaurant "Diner" saved with a score of 24.00`)

	_, err = run(t, "--api", api, "submit", "--name", "Diner", "--link", "x",
		"--date", "May 1st", "--taste", "8", "--experience", "7", "--value", "9")
	assert.ErrorContains(t, err, "expected YYYY-MM-DD")
}

func TestEntriesCommands(t *testing.T) {
	api := newAPI(t)

	out, err := run(t, "--api", api, "entries", "list", "--limit", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Diner")
	assert.Contains(t, out, "24.00")
	assert.Contains(t, out, "RESTAURANT")

	out, err = run(t, "--api", api, "entries", "list", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "No entries found.")

	out, err = run(t, "--api", api, "entries", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Notes: pie")
	assert.Contains(t, out, "Final score: 24.00")

	_, err = run(t, "--api", api, "entries", "get", "one")
	assert.ErrorContains(t, err, "invalid entry ID")
}

func TestHealthCommand(t *testing.T) {
	api := newAPI(t)

	out, err := run(t, "--api", api, "health", "--ready")
	require.NoError(t, err)
	assert.Contains(t, out, "health: healthy")
	assert.Contains(t, out, "storage: ready")
}
