// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores the history of held elections in SQLite or Postgres.

# Connecting

Open picks the driver from the database type (TypeSQLite is the default,
TypePostgres uses lib/pq) and pings the server:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.

# Tables

  - held_election: one row per held election. The summary columns back
    the history listing; payload is the full JSON record including every
    method's result.

Times are stored as unix milliseconds (closed_unix_ms for the wall clock,
opened_at_ms and closed_at_ms for sim time).

# History Store

HistoryStore is an election.Observer. ElectionClosed only queues the
record; a background goroutine inserts it. Close drains the queue:

	store := db.NewHistoryStore(conn, logger)
	defer store.Close()
	runner.Subscribe(store)

	items, err := store.List(ctx, 50)
	held, err := store.Get(ctx, id)

Get returns ErrNotFound for unknown IDs.
*/
package db
