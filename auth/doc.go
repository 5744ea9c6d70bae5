// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and bearer token utilities.

# Passwords

Passwords are stored as bcrypt hashes at the default cost:

	hash, err := auth.HashPassword("s3cret")
	err = auth.CheckPassword(hash, "s3cret") // nil, or ErrInvalidPassword

# Access Tokens

Access tokens are HS256 JWTs signed with the configured SECRET_KEY:

	token, err := auth.IssueToken(username, cfg.SecretKey, cfg.TokenTTL, time.Now())
	username, err := auth.ParseToken(token, cfg.SecretKey)

The subject claim carries the username and every token gets a random jti,
so two tokens issued in the same second still differ. ParseToken rejects
expired tokens, tokens without an expiry and tokens signed with any other
algorithm, all as ErrInvalidToken.
*/
package auth
