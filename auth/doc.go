// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides operator keys and voter identities for the API.

# Admin Keys

Operator endpoints (opening an election, changing the sim speed) require an
X-Admin-Key header. Keys use HMAC-SHA256 of the world name:

	adminKey := auth.GenerateAdminKey(world, salt)
	err := auth.ValidateAdminKey(world, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same world name and salt always produce the same key, so nothing needs
to be stored. The server logs the key at startup.

# Voter IDs

API votes are cast under an ID that can't collide with the simulated
populace ("votie-N"):

	id, err := auth.VoterID(req.VoterID, middleware.GetClientIP(r), salt)

A supplied ID becomes "api-<id>" (letters, digits, '-' and '_', at most
MaxVoterIDLength). Without one the voter is "ip-<hash>", so each address
gets one vote per election.

# IP Hashing

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
