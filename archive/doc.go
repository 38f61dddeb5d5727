// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package archive writes held elections to zstd-compressed JSON lines files
// and reads them back. A Writer is an election.Observer.
package archive
