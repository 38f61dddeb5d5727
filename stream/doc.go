// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stream pushes held elections to websocket clients.

A Hub is both an election.Observer and the handler for GET /stream. Each
held election is sent to every connected client as one text frame:

	{"type": "election_closed", "election": { ...held election... }}

Each client has a small send buffer; a client that stops reading misses
messages instead of slowing the simulation.
*/
package stream
