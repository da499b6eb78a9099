// Package repositories provides the persistence layer for delegated-auth
// tokens.
//
// The only durable state in weathermix is the user's OAuth token: catalog
// results, weather readings, and generated mixes all live for a single run.
// [TokenRepository] stores one token row per external service in SQLite,
// replacing the hardcoded cache file a typical OAuth helper would write with
// a pluggable store behind the services.TokenPersister interface.
package repositories
