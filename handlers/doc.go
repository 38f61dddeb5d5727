// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the voties API.

# Handler Types

Each handler is a struct over the simulation runner:

  - ElectionHandler: Open elections, vote queuing, opening elections on demand
  - HistoryHandler: Held elections and their text summaries
  - SimHandler: Clock and speed

Handlers are created via constructor functions:

	electionHandler := handlers.NewElectionHandler(runner, cfg)
	historyHandler := handlers.NewHistoryHandler(store, runner)
	simHandler := handlers.NewSimHandler(runner)

# Voting Flow

Votes are not cast by the handler. They are queued on the runner and cast
at the start of the next tick's cast phase, so a vote accepted before a tick
is counted even if that tick closes the election:

	POST /elections/{id}/votes → CastVote (202 Accepted)

The body carries the voter's traits and optional attributes; the runner
rates the options exactly as it rates its own populace. A voter_id may be
supplied; otherwise the voter is identified by a salted hash of the client
IP. A second vote from the same voter is refused with 409.

# Admin Operations

	POST /elections  → OpenElection (optional name and method)
	POST /sim/speed  → SetSpeed (clamped to [0.1, 20])

Admin operations require the X-Admin-Key header, checked by the router.

# History

	GET /history              → ListHistory (?limit=1..500)
	GET /history/{id}         → GetHistory
	GET /history/{id}/summary → GetSummary (text/plain)

History is read from the store. Elections closed so recently that the
store's writer has not caught up are served from the runner's memory.
*/
package handlers
