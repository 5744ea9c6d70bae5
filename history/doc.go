// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package history answers point-in-time questions about ratings.

The Resolver reads the append-only rating history and, for a calendar day,
keeps the last change each user made to each assessment on that day. Days
are interpreted in a configured location (UTC by default). A user who did
not change a rating on the day contributes nothing; there is no look-back
to earlier days.

The Composer resolves two days, aggregates each with the rating package
and attaches capability, attribute, component and model names:

	resolver := history.NewResolver(store, cfg.Location)
	composer := history.NewComposer(store, resolver)
	graph, err := composer.Compose(ctx, ids, start, end)

The two resolutions and the metadata lookup run concurrently; the first
error cancels the others and fails the call.
*/
package history
