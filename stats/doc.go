// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package stats keeps the rolling world statistics voters read when rating
// election options: treasury and housing fill series, population, and
// recent deaths by reason.
package stats
