package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout  = 5 * time.Second
	MigrationTimeout = 30 * time.Second
)

const MaxRequestBodyBytes = 64 << 10

// match history
const (
	DefaultMatchPageSize = 50
	MinMatchPageSize     = 10
	MaxMatchPageSize     = 100
	// MaxMatchPage keeps (page-1)*size far from overflow. Any page past the candidate
	// cap is empty anyway.
	MaxMatchPage = 1_000_000
	// MatchCandidateCap bounds the id list sent in one enrichment query. Candidates past
	// the cap are dropped.
	MatchCandidateCap = 2000
)

// search
const (
	SearchMinQueryLength = 2
	SearchDefaultLimit   = 10
	SearchMaxLimit       = 20
)

// match of the day
const (
	FeaturedMinRating = 7.0
	FallbackMinRating = 6.0
)

const (
	RandomSuperstarsDefault = 12
	RandomSuperstarsMax     = 60
)
