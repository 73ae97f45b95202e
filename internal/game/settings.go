package game

import "time"

// Settings are constant for the lifetime of a session.
type Settings struct {
	RoundsToWin   int // rounds to complete for a win
	ItemsPerRound int // 1 target + N-1 distractors
	MaxMistakes   int // losing happens on the first miss beyond this

	FastThreshold   time.Duration
	MediumThreshold time.Duration
	FastScore       int
	MediumScore     int
	SlowScore       int

	NextRoundDelay time.Duration // pause between a correct drop and the next round
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		RoundsToWin:     5,
		ItemsPerRound:   8,
		MaxMistakes:     3,
		FastThreshold:   2 * time.Second,
		MediumThreshold: 5 * time.Second,
		FastScore:       100,
		MediumScore:     70,
		SlowScore:       50,
		NextRoundDelay:  600 * time.Millisecond,
	}
}

// Validate checks settings that do not depend on the catalog.
func (s Settings) Validate() error {
	switch {
	case s.RoundsToWin < 1:
		return &ConfigError{Field: "RoundsToWin", Reason: "must be at least 1"}
	case s.ItemsPerRound < 1:
		return &ConfigError{Field: "ItemsPerRound", Reason: "must be at least 1"}
	case s.MaxMistakes < 0:
		return &ConfigError{Field: "MaxMistakes", Reason: "must not be negative"}
	case s.FastThreshold < 0:
		return &ConfigError{Field: "FastThreshold", Reason: "must not be negative"}
	case s.MediumThreshold < s.FastThreshold:
		return &ConfigError{Field: "MediumThreshold", Reason: "must not be below FastThreshold"}
	case s.NextRoundDelay < 0:
		return &ConfigError{Field: "NextRoundDelay", Reason: "must not be negative"}
	}
	return nil
}

// CheckCatalog reports whether a catalog of size n can host a session.
func (s Settings) CheckCatalog(n int) error {
	if n == 0 {
		return &ConfigError{Field: "catalog", Reason: "no entries", Err: ErrEmptyCatalog}
	}
	if n < s.ItemsPerRound {
		return &ConfigError{
			Field:  "catalog",
			Reason: "fewer entries than ItemsPerRound",
			Err:    ErrCatalogTooSmall,
		}
	}
	return nil
}

// ScoreFor returns the points awarded for a hit after elapsed reaction time.
func (s Settings) ScoreFor(elapsed time.Duration) int {
	switch {
	case elapsed < s.FastThreshold:
		return s.FastScore
	case elapsed < s.MediumThreshold:
		return s.MediumScore
	default:
		return s.SlowScore
	}
}
