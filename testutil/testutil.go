// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/voties/cliparse"
	"github.com/danielhkuo/voties/db"
	"github.com/danielhkuo/voties/election"
	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/rating"
	"github.com/danielhkuo/voties/rng"
	"github.com/danielhkuo/voties/sim"
	"github.com/danielhkuo/voties/tally"
	"github.com/danielhkuo/voties/tuning"
)

// SetupTestDB creates a fresh SQLite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: db.TypeSQLite,
		AdminKeySalt: "test-admin-salt",
	}
}

// QuietLogger discards everything
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestRunner builds a runner over an empty world, so only API voters
// take part in its elections
func NewTestRunner(t *testing.T) *sim.Runner {
	t.Helper()

	tun := tuning.Default()
	tun.Populace.Size = 0
	r, err := sim.NewRunner(tun, QuietLogger())
	if err != nil {
		t.Fatalf("Failed to create runner: %v", err)
	}
	return r
}

// TestOptions is the ballot used by HeldElection: a house, a mint and
// doing nothing
func TestOptions() []models.Option {
	return []models.Option{models.House(3), models.Mint(), models.DoNothing()}
}

// HeldElection runs a three voter election under method and returns its
// record. Two of three voters rank the house first.
func HeldElection(t *testing.T, name string, method tally.Method, closed time.Time) election.HeldElection {
	t.Helper()

	engine := election.NewEngine(election.Config{OpenFor: time.Second}, rng.New(rng.DefaultSeed), nil, nil, QuietLogger())
	el := engine.Open(name, TestOptions(), method)

	votes := [][]rating.OptionRating{
		{{OptionIndex: 0, Rating: rating.ExtremelyPositive}, {OptionIndex: 1, Rating: rating.SlightlyPositive}, {OptionIndex: 2, Rating: rating.SlightlyNegative}},
		{{OptionIndex: 0, Rating: rating.Positive}, {OptionIndex: 2, Rating: rating.Neutral}, {OptionIndex: 1, Rating: rating.SlightlyNegative}},
		{{OptionIndex: 1, Rating: rating.ExtremelyPositive}, {OptionIndex: 0, Rating: rating.Positive}, {OptionIndex: 2, Rating: rating.ExtremelyNegative}},
	}
	for i, v := range votes {
		if _, err := el.Cast(fmt.Sprintf("voter-%d", i), v); err != nil {
			t.Fatalf("Failed to cast test vote: %v", err)
		}
	}

	held := engine.CloseDue(2 * time.Second)
	if len(held) != 1 {
		t.Fatalf("Expected 1 held election, got %d", len(held))
	}
	held[0].Closed = closed.UTC()
	return held[0]
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
