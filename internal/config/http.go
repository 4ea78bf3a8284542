package config

import "time"

type HTTP struct {
	BaseURL   string    `env:"BASE_URL,expand" envDefault:"/"`
	Address   string    `env:"ADDRESS,expand" envDefault:":3000"`
	CORS      CORS      `envPrefix:"CORS_"`
	Session   Session   `envPrefix:"SESSION_"`
	RateLimit RateLimit `envPrefix:"RATELIMIT_"`
	Authn     Authn     `envPrefix:"AUTHN_"`
	Authz     Authz     `envPrefix:"AUTHZ_"`
}

type CORS struct {
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowCredentials bool     `env:"ALLOW_CREDENTIALS" envDefault:"true"`
}

type Session struct {
	Dir    string   `env:"DIR,expand" envDefault:"sessions"`
	Keys   []string `env:"KEYS" envSeparator:","`
	Cookie Cookie   `envPrefix:"COOKIE_"`
}

type Cookie struct {
	Name     string        `env:"NAME" envDefault:"instants_session"`
	Path     string        `env:"PATH" envDefault:"/"`
	HTTPOnly bool          `env:"HTTP_ONLY" envDefault:"true"`
	Secure   bool          `env:"SECURE" envDefault:"false"`
	MaxAge   time.Duration `env:"MAX_AGE" envDefault:"24h"`
}

type RateLimit struct {
	Enabled      bool          `env:"ENABLED" envDefault:"true"`
	TrustHeaders bool          `env:"TRUST_HEADERS" envDefault:"false"`
	Interval     time.Duration `env:"INTERVAL" envDefault:"6s"`
	MaxBurst     int           `env:"MAX_BURST" envDefault:"10"`
	CacheSize    int           `env:"CACHE_SIZE" envDefault:"1024"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

type Authn struct {
	OIDC OIDC `envPrefix:"OIDC_"`
}

type OIDC struct {
	Issuer       string        `env:"ISSUER,expand"`
	ClientID     string        `env:"CLIENT_ID,expand"`
	ClientSecret string        `env:"CLIENT_SECRET,expand"`
	CallbackURL  string        `env:"CALLBACK_URL,expand"`
	Scopes       []string      `env:"SCOPES" envSeparator:"," envDefault:"openid,email,profile"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type Authz struct {
	AdminEmail string `env:"ADMIN_EMAIL,expand"`
}
