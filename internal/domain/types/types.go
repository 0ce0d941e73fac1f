// Package types contains the response envelope types shared between the
// scoring engine and its consumers. JSON names follow the dashboard
// contract and are not negotiable here.
//
// Nullable scores are pointers on purpose: a nil score means "no data",
// which consumers must be able to distinguish from a literal 0.
package types

// MiniScores breaks the form score into its weighted sub-scores. Only the
// sub-scores that could actually be computed are present.
type MiniScores struct {
	Sommeil            *int `json:"sommeil,omitempty"`
	ChargeRecup        *int `json:"charge_recup,omitempty"`
	PerformanceRecente *int `json:"performance_recente,omitempty"`
}

// FormScore is the readiness composite.
type FormScore struct {
	Score          *int        `json:"score"`
	Calibration    bool        `json:"calibration"`
	JoursManquants int         `json:"jours_manquants,omitempty"`
	Insufficient   bool        `json:"insufficient_data,omitempty"`
	MiniScores     *MiniScores `json:"mini_scores,omitempty"`
	Message        string      `json:"message,omitempty"`
}

// PowerDetails echoes the raw anthropometrics the power index was built on.
type PowerDetails struct {
	PoidsKG        float64  `json:"poids"`
	TailleCM       *float64 `json:"taille,omitempty"`
	MasseGrassePct *float64 `json:"masseGrasse,omitempty"`
}

// PowerIndex is the strength/power composite. CategorieScores carries the
// per-category bests actually used, rounded for display.
type PowerIndex struct {
	Indice          *int           `json:"indice"`
	ScoreCompo      *int           `json:"scoreCompo"`
	ScoreForce      *int           `json:"scoreForce"`
	CategorieScores map[string]int `json:"categorieScores"`
	Details         *PowerDetails  `json:"details,omitempty"`
}

// ExerciseProgress is one exercise's relative score for advice targeting.
type ExerciseProgress struct {
	Exercice string `json:"exercice"`
	Score    int    `json:"score"`
}

// EvolutionContext surfaces the strongest and weakest movers.
type EvolutionContext struct {
	TopProgress    []ExerciseProgress `json:"topProgress"`
	BottomProgress []ExerciseProgress `json:"bottomProgress"`
}

// EvolutionScore is the relative-progress composite. The index is unclamped
// above 100 when the athlete currently exceeds their historical peak.
type EvolutionScore struct {
	Indice  *int             `json:"indice"`
	Context EvolutionContext `json:"context"`
}

// Envelope bundles the three indices returned per request. It is produced
// fresh per call and never persisted by the engine.
type Envelope struct {
	ScoreForme           FormScore      `json:"scoreForme"`
	IndicePoidsPuissance PowerIndex     `json:"indicePoidsPuissance"`
	ScoreEvolution       EvolutionScore `json:"scoreEvolution"`
}
