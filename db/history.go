// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/voties/election"
	"github.com/danielhkuo/voties/models"
)

// ErrNotFound is returned when a held election is not in the store
var ErrNotFound = errors.New("held election not found")

// DefaultListLimit caps List when no limit is given
const DefaultListLimit = 100

// HistoryStore persists held elections. As an election.Observer it queues
// records for a background writer so the tick never waits on the database.
type HistoryStore struct {
	db     *sql.DB
	logger *slog.Logger

	ch     chan election.HeldElection
	wg     sync.WaitGroup
	once   sync.Once
	closed atomic.Bool
}

// NewHistoryStore starts the background writer. The caller keeps ownership
// of db; Close stops the writer but does not close db.
func NewHistoryStore(db *sql.DB, logger *slog.Logger) *HistoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &HistoryStore{
		db:     db,
		logger: logger,
		ch:     make(chan election.HeldElection, 1024),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s
}

func (s *HistoryStore) loop() {
	for held := range s.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.Save(ctx, held); err != nil {
			s.logger.Error("failed to save held election", "election_id", held.ID, "error", err)
		}
		cancel()
	}
}

// ElectionClosed queues held for saving. Records are dropped if the writer
// falls behind.
func (s *HistoryStore) ElectionClosed(held election.HeldElection) {
	if s.closed.Load() {
		return
	}
	select {
	case s.ch <- held:
	default:
		s.logger.Warn("history writer behind, dropping held election", "election_id", held.ID)
	}
}

// Close drains queued records and stops the writer
func (s *HistoryStore) Close() error {
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
	})
	return nil
}

// Save inserts held. Saving the same election twice is a no-op.
func (s *HistoryStore) Save(ctx context.Context, held election.HeldElection) error {
	if len(held.Results) == 0 {
		return fmt.Errorf("held election %s has no results", held.ID)
	}
	payload, err := json.Marshal(held)
	if err != nil {
		return fmt.Errorf("failed to encode held election: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO held_election (id, name, method, winner, voter_count, opened_at_ms, closed_at_ms, closed_unix_ms, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`, held.ID.String(), held.Name, held.Method.String(), held.Winner().Label(), held.Voters,
		held.OpenedAt.Milliseconds(), held.ClosedAt.Milliseconds(), held.Closed.UnixMilli(), string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert held election: %w", err)
	}
	return nil
}

// List returns the most recently closed elections, newest first
func (s *HistoryStore) List(ctx context.Context, limit int) ([]models.HeldElectionListItem, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, method, winner, voter_count, closed_unix_ms
		FROM held_election
		ORDER BY closed_unix_ms DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	items := []models.HeldElectionListItem{}
	for rows.Next() {
		var item models.HeldElectionListItem
		var closedMs int64
		if err := rows.Scan(&item.ID, &item.Name, &item.Method, &item.Winner, &item.VoterCount, &closedMs); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		item.ClosedAt = time.UnixMilli(closedMs).UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return items, nil
}

// Get loads one held election with all of its results
func (s *HistoryStore) Get(ctx context.Context, id uuid.UUID) (election.HeldElection, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM held_election WHERE id = $1", id.String()).Scan(&payload)
	if err == sql.ErrNoRows {
		return election.HeldElection{}, ErrNotFound
	}
	if err != nil {
		return election.HeldElection{}, fmt.Errorf("failed to query held election: %w", err)
	}

	var held election.HeldElection
	if err := json.Unmarshal([]byte(payload), &held); err != nil {
		return election.HeldElection{}, fmt.Errorf("failed to decode held election %s: %w", id, err)
	}
	return held, nil
}

// Count returns the number of stored elections
func (s *HistoryStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM held_election").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}
