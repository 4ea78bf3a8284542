package config

import "time"

type Storage struct {
	Database Database `envPrefix:"DATABASE_"`
	Tags     Tags     `envPrefix:"TAGS_"`
	Cache    Cache    `envPrefix:"CACHE_"`
}

type Database struct {
	DSN string `env:"DSN" envDefault:"story.db"`

	// MaxRetries bounds the retries of reads on a busy or locked database
	MaxRetries int           `env:"MAX_RETRIES" envDefault:"5"`
	RetryDelay time.Duration `env:"RETRY_DELAY" envDefault:"50ms"`
}

type Tags struct {
	// Atomic wraps tag set replacements in a single transaction.
	Atomic bool `env:"ATOMIC" envDefault:"false"`
}

// Cache keeps recently read stories and tags in memory. Writes made by
// another process on the same database are not seen until the TTL expires.
type Cache struct {
	Enabled bool          `env:"ENABLED" envDefault:"false"`
	Size    int           `env:"SIZE" envDefault:"256"`
	TTL     time.Duration `env:"TTL" envDefault:"10m"`
}
