// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

// Application defaults
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultCommitEvery   = 100_000
	DefaultProgressEvery = 500_000
	DefaultClassifier    = ClassifierCodepoint
)

// Quality gate
const (
	DefaultMinLines     = 10
	DefaultMinTextBytes = 100
)

// Language classifier thresholds
const (
	MinClassifyBytes = 30
	JapaneseMinChars = 10
	KoreanMinChars   = 10
	LatinMinChars    = 30
	ExcludedMaxChars = 50
)

// Classifier backends
const (
	ClassifierCodepoint = "codepoint"
	ClassifierLingua    = "lingua"
)

// Source pre-filter and identity bucketing
const (
	DefaultMinDuration    = 60
	DurationBucketSeconds = 10.0
)

// Database and run-scoped indices
const (
	ReadMmapSize        = 4 << 30
	ReadCacheSizeKiB    = 1_000_000
	WriteCacheSizeKiB   = 500_000
	FingerprintCapacity = 1 << 20
	IdentityCapacity    = 1 << 20
)

// File Permissions
const (
	DirPermissions = 0755
)
