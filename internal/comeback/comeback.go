// Package comeback scores a trailing team's chance of turning a match around.
//
// The model is additive: each factor contributes a non-negative, individually
// capped number of points and the total is clamped to MaxProbability.
package comeback

import (
	"fmt"
	"math"
	"strings"

	"github.com/albapepper/comeback-scout/internal/model"
)

// --------------------------------------------------------------------------
// Thresholds
// --------------------------------------------------------------------------

const (
	MaxProbability    = 95.0
	ScenarioThreshold = 50.0 // strictly greater flags a comeback scenario
	AlertThreshold    = 60.0 // strictly greater creates an alert

	maxReasons      = 3
	reasonSeparator = ", "
)

// Factor weights and caps.
const (
	superteamWeight = 30.0

	xgWeight = 15.0
	xgCap    = 25.0

	possessionFloor  = 55
	possessionWeight = 0.5

	shotsWeight = 2.0
	shotsCap    = 15.0

	onTargetWeight = 3.0
	onTargetCap    = 10.0

	attacksWeight = 0.3
	attacksCap    = 10.0
)

// Evaluate returns the comeback probability in [0, MaxProbability] and a
// rationale built from at most three of the fired factors.
// rate is only used when superteam is true.
func Evaluate(team, opponent model.TeamStats, superteam bool, rate float64) (float64, string) {
	var (
		probability float64
		reasons     []string
	)

	if superteam {
		probability += rate * superteamWeight
		reasons = append(reasons, fmt.Sprintf("Time com histórico de viradas (%d%%)", int(rate*100)))
	}

	if team.XG > opponent.XG {
		probability += math.Min((team.XG-opponent.XG)*xgWeight, xgCap)
		reasons = append(reasons, fmt.Sprintf("xG superior (%.1f vs %.1f)", team.XG, opponent.XG))
	}

	if team.Possession > possessionFloor {
		probability += float64(team.Possession-possessionFloor) * possessionWeight
		reasons = append(reasons, fmt.Sprintf("Domínio de posse (%d%%)", team.Possession))
	}

	if team.Shots > opponent.Shots {
		probability += math.Min(float64(team.Shots-opponent.Shots)*shotsWeight, shotsCap)
		reasons = append(reasons, fmt.Sprintf("Mais finalizações (%d vs %d)", team.Shots, opponent.Shots))
	}

	if team.ShotsOnTarget > opponent.ShotsOnTarget {
		probability += math.Min(float64(team.ShotsOnTarget-opponent.ShotsOnTarget)*onTargetWeight, onTargetCap)
	}

	if team.DangerousAttacks > opponent.DangerousAttacks {
		probability += math.Min(float64(team.DangerousAttacks-opponent.DangerousAttacks)*attacksWeight, attacksCap)
		reasons = append(reasons, "Alta pressão ofensiva")
	}

	probability = math.Min(probability, MaxProbability)

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return probability, strings.Join(reasons, reasonSeparator)
}

// IsScenario reports whether p flags a comeback scenario.
func IsScenario(p float64) bool {
	return p > ScenarioThreshold
}

// AlertEligible reports whether p is high enough to persist an alert.
func AlertEligible(p float64) bool {
	return p > AlertThreshold
}
