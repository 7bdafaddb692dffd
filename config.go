package jddf

// Default limits used by DefaultConfig.
const (
	DefaultMaxDepth  = 32
	DefaultMaxErrors = 0
)

// Config bounds a validation call.
type Config struct {
	// MaxDepth caps how many refs may be followed in a row before validation
	// aborts with ErrMaxDepthExceeded. Values <= 0 mean DefaultMaxDepth.
	MaxDepth int `json:"maxDepth" yaml:"maxDepth"`
	// MaxErrors stops validation once this many errors were collected. Zero
	// (or a negative value) means unlimited.
	MaxErrors int `json:"maxErrors" yaml:"maxErrors"`
}

// DefaultConfig returns {MaxDepth: 32, MaxErrors: 0}.
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth, MaxErrors: DefaultMaxErrors}
}

func (c Config) normalize() Config {
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MaxErrors < 0 {
		c.MaxErrors = 0
	}
	return c
}
