package animation

import "time"

// DefaultConfig keeps a full pulse pair inside one tick.
func DefaultConfig() Config {
	return Config{
		OnDuration:  220 * time.Millisecond,
		OffDuration: 120 * time.Millisecond,
	}
}
