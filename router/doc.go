// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the voties API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(runner, store, hub, cfg)

# Endpoints

Health:

	GET /health

Open elections (public):

	GET  /elections            - List open elections
	GET  /elections/{id}       - One open election
	POST /elections/{id}/votes - Queue a vote

Admin (requires X-Admin-Key):

	POST /elections - Open an election now
	POST /sim/speed - Set the speed multiplier

Held elections (public):

	GET /history              - Newest first
	GET /history/{id}         - Full results
	GET /history/{id}/summary - Text summary

Simulation and stream:

	GET /sim    - Clock, speed and counts
	GET /stream - Websocket feed of held elections

Every route except /health, / and /stream is wrapped with request logging.
*/
package router
