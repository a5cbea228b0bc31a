package notifications

import (
	"fmt"

	"github.com/albapepper/comeback-scout/internal/model"
)

// buildMessage renders the human-readable text used by chat senders.
func buildMessage(a model.ComebackAlert) string {
	return fmt.Sprintf("🔄 Possível virada: %s vs %s\nPlacar %s aos %d'\nProbabilidade %.0f%%\n%s",
		a.TeamName, a.Opponent, a.Score, a.Minute, a.Probability, a.Reason)
}
