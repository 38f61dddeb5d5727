// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the voties simulation server.

voties is a small agent world whose populace periodically holds elections
to decide what gets built. Seven voting methods (First Past The Post,
Approval, Preferential, Good Ok Bad, STAR, Anti-Plurality and Usual
Judgment) run over the same rated ballots, so every held election records
what each method would have picked.

# Starting the Server

The server requires an admin key salt and otherwise runs on defaults:

	ADMIN_KEY_SALT=secret go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -tuning world.yaml -archive ./archive

# Configuration

Required settings:

  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: voties.db for sqlite)
  - TUNING_PATH (--tuning): World tuning YAML
  - ARCHIVE_DIR (--archive): Directory for the zstd election archive
  - LOG_LEVEL (--log-level): debug, info, warn or error

The admin key for the world is logged at startup.

# Architecture

A single runner goroutine owns the world and the election engine and
advances them every tick. Held elections fan out to observers fed through
buffered channels:

  - db: history store (SQLite or Postgres)
  - archive: daily zstd JSONL files
  - stream: websocket broadcast

Packages:

  - models, stats, rng, rating, ballot, tally, election: the election engine
  - sim, tuning: the world and its configuration
  - handlers, router, middleware, auth: the HTTP surface
  - db, archive, stream, report: held election outputs
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
