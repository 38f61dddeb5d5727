// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: Connection string (default: voties.db for sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - TuningPath: World tuning YAML (default: built-in)
  - ArchiveDir: Held election archive directory (default: disabled)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-admin-salt   Admin key salt
	-tuning       Tuning file
	-archive      Archive directory
	-log-level    Log level
	-env          Env file to load (default: .env)

# Environment Variables

Flags fall back to environment variables, which may come from the env file:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_KEY_SALT → -admin-salt
	TUNING_PATH    → -tuning
	ARCHIVE_DIR    → -archive
	LOG_LEVEL      → -log-level

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over the env file.

# Validation

ParseFlags returns an error if:

  - ADMIN_KEY_SALT is missing
  - PORT is not a number
  - DATABASE_TYPE is postgres and no DATABASE_URL is given
*/
package cliparse
