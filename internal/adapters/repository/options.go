package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialAthletes pre-sizes the athlete map.
func WithInitialAthletes(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.athletes = make(map[string]*athleteData, n)
		}
	}
}
