// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing from CLI flags, environment
variables, and an optional config file.

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

# Configuration Options

	Flag              Env Var         Default  Description
	--port            PORT            8000     Server port
	--database-url    DATABASE_URL    -        PostgreSQL URL or SQLite path (required)
	--database-type   DATABASE_TYPE   sqlite   sqlite or postgres
	--secret-key      SECRET_KEY      -        JWT signing secret (required)
	--token-ttl       TOKEN_TTL       300m     Access token lifetime
	--log-level       LOG_LEVEL       info     debug, info, warn, error
	--timezone        TIMEZONE        UTC      Location for calendar-date queries
	--seed-file       SEED_FILE       -        YAML bootstrap data
	--config          CONFIG          -        Config file ("flag value" per line)

# Priority

CLI flags take precedence over environment variables, which take precedence
over the config file. A .env file in the working directory is loaded into
the environment first; it never overrides variables that are already set.
*/
package cliparse
