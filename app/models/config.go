package models

const (
	DefaultMaxTagsCount  uint8  = 3
	DefaultMaxContentLen uint16 = 2000
	DefaultMaxTitleLen   uint8  = 250
)

// DefaultConfig returns the limits a fresh store starts with.
func DefaultConfig() Config {
	return Config{
		MaxTagsCount:  DefaultMaxTagsCount,
		MaxContentLen: DefaultMaxContentLen,
		MaxTitleLen:   DefaultMaxTitleLen,
		Tags:          []string{},
	}
}

// HasTag reports whether tag is whitelisted.
func (c *Config) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy with its own tag slice.
func (c Config) Clone() Config {
	c.Tags = append([]string{}, c.Tags...)
	return c
}
