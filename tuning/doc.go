// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tuning loads the world configuration: seed, tick rate, election
timing, populace size and the foods farms can grow.

Files are YAML and are checked against an embedded JSON schema before
decoding, so unknown keys and out-of-range values are rejected with the
offending path:

	world: riverside
	seed: 7
	election:
	  open_seconds: 10
	  methods: [star, usual_judgment]

Keys missing from a file keep the built-in defaults (see defaults.yaml).
*/
package tuning
