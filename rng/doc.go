// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rng provides the seedable random stream threaded through the
simulation.

The stream is passed explicitly (never a package global) so runs are
reproducible and tests can inject a fixed Source:

	src := rng.New(rng.DefaultSeed)
	jitter := rng.Range(src, -10, 10)
*/
package rng
