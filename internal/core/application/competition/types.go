package competition

import (
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Info is the competition window along with its current phase.
type Info struct {
	domain.Competition
	Phase domain.Phase
	Now   time.Time
}

// Standing is the position of a participant in the leaderboard.
type Standing struct {
	Rank  int
	Owner string
	// Total is the value of the whole vault in the stable asset.
	Total decimal.Decimal
}
