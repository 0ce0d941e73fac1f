package scoring

import (
	"time"

	"github.com/sprinflow/indices/internal/domain/model"
)

// Acute:chronic workload windows and scoring bands. The 0.8-1.3 ratio band
// is the commonly cited sweet spot; shortfall and overload decay linearly
// towards a floor instead of falling off a cliff.
const (
	acuteWindowDays   = 7
	chronicWindowDays = 28

	acwrLow       = 0.8
	acwrHigh      = 1.3
	acwrFloor     = 20.0
	overloadDecay = 100.0
	shortfallBase = 60.0
	shortfallSpan = 40.0
)

// LoadRecoveryScore derives the load/recovery balance sub-score from the
// training-session history: daily session-RPE load averaged over the acute
// (7-day) and chronic (28-day) windows ending at now, scored on the
// acute:chronic ratio. The second return is false when there is no chronic
// history to compare against.
func LoadRecoveryScore(sessions []model.TrainingSession, now time.Time) (float64, bool) {
	acuteStart := now.AddDate(0, 0, -acuteWindowDays)
	chronicStart := now.AddDate(0, 0, -chronicWindowDays)

	var acuteTotal, chronicTotal float64
	for _, s := range sessions {
		if s.Date.After(now) || !s.Date.After(chronicStart) {
			continue
		}
		load := s.Load()
		chronicTotal += load
		if s.Date.After(acuteStart) {
			acuteTotal += load
		}
	}

	if chronicTotal == 0 {
		return 0, false
	}

	acute := acuteTotal / acuteWindowDays
	chronic := chronicTotal / chronicWindowDays
	ratio := acute / chronic

	switch {
	case ratio < acwrLow:
		// Undertraining: ramp from the shortfall base up to 100 at the band edge.
		return clamp(shortfallBase + ratio/acwrLow*shortfallSpan), true
	case ratio <= acwrHigh:
		return maxScore, true
	default:
		// Overload: spike risk grows with the excess ratio.
		return max(acwrFloor, maxScore-(ratio-acwrHigh)*overloadDecay), true
	}
}
