package clock

import (
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/core/ports"
)

type systemClock struct{}

// NewSystemClock returns a clock reading the system time, truncated to
// domain.TimePrecision.
func NewSystemClock() ports.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return domain.TruncateTime(time.Now())
}
