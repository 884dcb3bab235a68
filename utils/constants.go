package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Rate and currency constants
const (
	// EuroCurrency is the currency all tariffs are quoted in
	EuroCurrency = "EUR"
)

// Cache key suffixes, prefixed with the configured Redis prefix at call sites
const (
	// RuleSnapshotCacheKey stores the serialized tariff rule snapshot
	RuleSnapshotCacheKey = "pricing:rule-snapshot"

	// RuleSnapshotLockKey guards concurrent snapshot rebuilds
	RuleSnapshotLockKey = "pricing:rule-snapshot:lock"
)
