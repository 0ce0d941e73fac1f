package scoring

import (
	"fmt"
	"time"

	"github.com/sprinflow/indices/internal/domain/model"
	"github.com/sprinflow/indices/internal/domain/types"
)

// Sleep sub-score shape: duration adequacy against an 8h target carries
// most of the weight, perceived quality the rest. A three-night average
// under the crisis threshold caps the sub-score.
const (
	sleepTargetHours   = 8.0
	sleepQualityMax    = 5.0
	sleepDurationShare = 0.7
	sleepQualityShare  = 0.3

	sleepAverageWindowDays = 7
	sleepCrisisWindowDays  = 3
	sleepCrisisHours       = 6.0
	sleepCrisisCap         = 50.0
)

// FormInput feeds the readiness scorer. MinDays is the calibration
// threshold supplied by configuration, never hard-coded here.
type FormInput struct {
	SleepWindow       []model.SleepEntry
	TrainingSessions  []model.TrainingSession
	RecentPerformance *float64
	TrackedDays       int
	MinDays           int
	Now               time.Time
}

// ScoreForme combines sleep adequacy (50%), load/recovery balance (30%)
// and recent-performance trend (20%) into the readiness composite.
//
// While the athlete has fewer tracked days than the calibration minimum the
// score is null, calibration is flagged, and jours_manquants carries the
// remaining countdown, recomputed per request. Once calibrated, any subset
// of the three sub-scores renormalizes the weights exactly like the power
// index does; the score is null with the insufficient flag only when none
// can be computed.
func ScoreForme(in FormInput) types.FormScore {
	if in.TrackedDays < in.MinDays {
		missing := in.MinDays - in.TrackedDays
		return types.FormScore{
			Calibration:    true,
			JoursManquants: missing,
			Message: fmt.Sprintf(
				"Calibration en cours : encore %d jour(s) de données requis.", missing),
		}
	}

	mini := &types.MiniScores{}
	var sum, weightSum float64

	if sleep, ok := sleepScore(in.SleepWindow, in.Now); ok {
		mini.Sommeil = roundPtr(sleep)
		sum += sleep * sleepWeight
		weightSum += sleepWeight
	}
	if load, ok := LoadRecoveryScore(in.TrainingSessions, in.Now); ok {
		mini.ChargeRecup = roundPtr(load)
		sum += load * loadRecoveryWeight
		weightSum += loadRecoveryWeight
	}
	if in.RecentPerformance != nil {
		perf := clamp(*in.RecentPerformance)
		mini.PerformanceRecente = roundPtr(perf)
		sum += perf * recentPerfWeight
		weightSum += recentPerfWeight
	}

	if weightSum == 0 {
		return types.FormScore{
			Insufficient: true,
			Message:      "Pas assez de données récentes pour calculer le score de forme.",
		}
	}

	return types.FormScore{
		Score:      roundPtr(sum / weightSum),
		MiniScores: mini,
	}
}

// sleepScore averages the trailing seven nights. Returns false when the
// window holds no entry.
func sleepScore(entries []model.SleepEntry, now time.Time) (float64, bool) {
	averageStart := now.AddDate(0, 0, -sleepAverageWindowDays)
	crisisStart := now.AddDate(0, 0, -sleepCrisisWindowDays)

	var durSum, qualSum, crisisDurSum float64
	var n, crisisN int
	for _, e := range entries {
		if e.Date.After(now) || !e.Date.After(averageStart) {
			continue
		}
		durSum += e.DurationHours
		qualSum += float64(e.Quality)
		n++
		if e.Date.After(crisisStart) {
			crisisDurSum += e.DurationHours
			crisisN++
		}
	}
	if n == 0 {
		return 0, false
	}

	durScore := clamp(durSum / float64(n) / sleepTargetHours * maxScore)
	qualScore := clamp(qualSum / float64(n) / sleepQualityMax * maxScore)
	score := durScore*sleepDurationShare + qualScore*sleepQualityShare

	// Crisis window: three short nights in a row override a good weekly average.
	if crisisN >= sleepCrisisWindowDays && crisisDurSum/float64(crisisN) < sleepCrisisHours {
		score = min(score, sleepCrisisCap)
	}

	return score, true
}
