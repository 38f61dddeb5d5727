// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/voties/db"
	"github.com/danielhkuo/voties/election"
	"github.com/danielhkuo/voties/models"
	"github.com/danielhkuo/voties/tally"
	"github.com/danielhkuo/voties/testutil"
)

func newHistoryHandler(t *testing.T) (*HistoryHandler, *db.HistoryStore) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	store := db.NewHistoryStore(conn, testutil.QuietLogger())
	t.Cleanup(func() { store.Close() })
	return NewHistoryHandler(store, testutil.NewTestRunner(t)), store
}

func historyRequest(path, id string) *http.Request {
	req := testutil.MakeRequest("GET", path, nil, nil)
	if id != "" {
		req.SetPathValue("id", id)
	}
	return req
}

func TestListHistory(t *testing.T) {
	h, store := newHistoryHandler(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i, m := range []tally.Method{tally.FirstPastThePost, tally.Approval, tally.Star} {
		held := testutil.HeldElection(t, m.Title(), m, base.Add(time.Duration(i)*time.Minute))
		if err := store.Save(ctx, held); err != nil {
			t.Fatal(err)
		}
	}

	w := httptest.NewRecorder()
	h.ListHistory(w, historyRequest("/history", ""))
	testutil.AssertStatus(t, w, http.StatusOK)

	var items []models.HeldElectionListItem
	testutil.AssertJSON(t, w, &items)
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[0].Method != "star" {
		t.Errorf("Expected newest (star) first, got %s", items[0].Method)
	}

	w = httptest.NewRecorder()
	h.ListHistory(w, historyRequest("/history?limit=2", ""))
	testutil.AssertStatus(t, w, http.StatusOK)
	items = nil
	testutil.AssertJSON(t, w, &items)
	if len(items) != 2 {
		t.Errorf("Expected 2 items with limit, got %d", len(items))
	}

	for _, bad := range []string{"0", "-1", "abc", "501"} {
		w = httptest.NewRecorder()
		h.ListHistory(w, historyRequest("/history?limit="+bad, ""))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}
}

func TestListHistoryIncludesUnwrittenElections(t *testing.T) {
	h, _ := newHistoryHandler(t)

	// Close an election in the runner without the store observing it
	view := h.runner.OpenElection("Fresh", nil)
	runnerVote(t, h, view.ID)
	closeAll(t, h)

	w := httptest.NewRecorder()
	h.ListHistory(w, historyRequest("/history", ""))
	testutil.AssertStatus(t, w, http.StatusOK)

	var items []models.HeldElectionListItem
	testutil.AssertJSON(t, w, &items)
	if len(items) != 1 || items[0].Name != "Fresh" {
		t.Fatalf("Expected the in-memory election, got %+v", items)
	}
	if items[0].VoterCount != 1 {
		t.Errorf("Expected 1 voter, got %d", items[0].VoterCount)
	}
}

func TestGetHistory(t *testing.T) {
	h, store := newHistoryHandler(t)
	held := testutil.HeldElection(t, "Stored", tally.GoodOkBad, time.Now())
	if err := store.Save(context.Background(), held); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"stored", held.ID.String(), http.StatusOK},
		{"unknown", uuid.NewString(), http.StatusNotFound},
		{"malformed", "nope", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.GetHistory(w, historyRequest("/history/"+tt.id, tt.id))
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var got election.HeldElection
				testutil.AssertJSON(t, w, &got)
				if got.ID != held.ID || got.Method != tally.GoodOkBad {
					t.Errorf("Unexpected held election %s %s", got.ID, got.Method)
				}
				if len(got.Results) != len(tally.All()) {
					t.Errorf("Expected %d results, got %d", len(tally.All()), len(got.Results))
				}
			}
		})
	}
}

func TestGetSummary(t *testing.T) {
	h, store := newHistoryHandler(t)
	held := testutil.HeldElection(t, "Summarized", tally.FirstPastThePost, time.Now())
	if err := store.Save(context.Background(), held); err != nil {
		t.Fatal(err)
	}

	id := held.ID.String()
	w := httptest.NewRecorder()
	h.GetSummary(w, historyRequest("/history/"+id+"/summary", id))
	testutil.AssertStatus(t, w, http.StatusOK)

	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
		t.Errorf("Expected text/plain, got %s", w.Header().Get("Content-Type"))
	}
	body := w.Body.String()
	if !strings.Contains(body, "Summarized (First Past The Post)") {
		t.Errorf("Summary missing title: %s", body)
	}
	if !strings.Contains(body, "Winner: Make a 3 bedroom house") {
		t.Errorf("Summary missing winner: %s", body)
	}
}

func runnerVote(t *testing.T, h *HistoryHandler, id string) {
	t.Helper()
	eh := NewElectionHandler(h.runner, testutil.GetTestConfig())
	w := httptest.NewRecorder()
	eh.CastVote(w, castRequest(id, models.CastVoteRequest{VoterID: "dave"}))
	testutil.AssertStatus(t, w, http.StatusAccepted)
}

func closeAll(t *testing.T, h *HistoryHandler) {
	t.Helper()
	h.runner.Step(time.Second)
	h.runner.Step(20 * time.Second)
	if len(h.runner.History()) == 0 {
		t.Fatal("Expected the election to close")
	}
}
