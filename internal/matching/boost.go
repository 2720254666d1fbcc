package matching

import "github.com/jonathan/matchly/internal/types"

// Status cutoffs
const (
	// StrongThreshold is the score at or above which a match is strong
	StrongThreshold = 0.85
	// DefaultThreshold is the score at or above which a match is partial
	DefaultThreshold = 0.65
)

// sqlSkill gets a stronger transform within the databases category
const sqlSkill = "sql"

// boostRule is the transform applied when two terms share a taxonomy category
type boostRule struct {
	factor float64
	floor  float64
}

var (
	defaultBoost = boostRule{factor: 1.1, floor: 0}
	sqlBoost     = boostRule{factor: 1.8, floor: 0.85}

	categoryBoosts = map[string]boostRule{
		"languages": {factor: 1.2, floor: 0},
		"databases": {factor: 1.3, floor: 0.5},
		"cloud":     {factor: 1.5, floor: 0.70},
		"devops":    {factor: 1.5, floor: 0.70},
		"security":  {factor: 1.5, floor: 0.70},
		"testing":   {factor: 1.5, floor: 0.70},
		"frontend":  {factor: 1.4, floor: 0.65},
		"backend":   {factor: 1.4, floor: 0.65},
		"data_ai":   {factor: 1.4, floor: 0.65},
	}
)

// Boost returns the boost factor and minimum floor for two normalized terms
// that share category. Languages are kept distinct (no floor); SQL against any
// database is treated as near-universal.
func Boost(category, a, b string) (factor, floor float64) {
	rule, ok := categoryBoosts[category]
	if !ok {
		rule = defaultBoost
	}
	if category == "databases" && (a == sqlSkill || b == sqlSkill) {
		rule = sqlBoost
	}
	return rule.factor, rule.floor
}

// applyBoost scales raw by factor, raises it to floor, then caps it at 1.
// The order matters: a raw score near 1 saturates before the floor is considered.
func applyBoost(raw, factor, floor float64) float64 {
	return min(1.0, max(raw*factor, floor))
}

// Classify maps a final score to a match status. threshold is the partial cutoff.
func Classify(score, threshold float64) types.MatchStatus {
	switch {
	case score >= StrongThreshold:
		return types.StatusStrong
	case score >= threshold:
		return types.StatusPartial
	default:
		return types.StatusMissing
	}
}
