package slugger

// Config holds resolver settings loaded from the environment.
type Config struct {
	// AutoSlugify derives the slug from the title. When disabled the caller's
	// slug is normalized and made unique instead.
	AutoSlugify  bool `env:"SLUG_AUTO_SLUGIFY" envDefault:"true"`
	AllowUnicode bool `env:"SLUG_ALLOW_UNICODE" envDefault:"true"`
	MaxLength    int  `env:"SLUG_MAX_LENGTH" envDefault:"255"`
	// MaxAttempts caps the number of candidates tried per resolve.
	MaxAttempts int `env:"SLUG_MAX_ATTEMPTS" envDefault:"1000"`
}

// DefaultConfig returns the settings used when no Config is supplied.
func DefaultConfig() Config {
	return Config{
		AutoSlugify:  true,
		AllowUnicode: true,
		MaxLength:    255,
		MaxAttempts:  1000,
	}
}
