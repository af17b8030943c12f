package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Phase is informational only, it's always derived from the current instant
// and never stored.
type Phase int

const (
	PhaseRegistration Phase = iota
	PhaseBeforeStart
	PhaseRunning
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseRegistration:
		return "REGISTRATION"
	case PhaseBeforeStart:
		return "BEFORE_START"
	case PhaseRunning:
		return "RUNNING"
	case PhaseEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

// Competition defines the entity data structure for the time windows of a
// competition and the grant given to every participant.
type Competition struct {
	// Optional registration window. Either both set or both nil.
	RegistrationStart *time.Time
	RegistrationEnd   *time.Time
	// Trading window [Start, End).
	Start time.Time
	End   time.Time
	// Asset granted at registration, also the reference unit for prices.
	StableAsset string
	// Amount of StableAsset granted at registration.
	InitialGrant decimal.Decimal
}

// NewCompetition returns a new competition after validating the ordering of
// its window bounds. Registration bounds are optional but must be given both
// or none.
func NewCompetition(
	registrationStart, registrationEnd *time.Time, start, end time.Time,
	stableAsset string, initialGrant decimal.Decimal,
) (*Competition, error) {
	if !isValidAssetID(stableAsset) {
		return nil, ErrAssetInvalidID
	}
	if initialGrant.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf(
			"%w: initial grant must be greater than zero", ErrValidation,
		)
	}

	start, end = TruncateTime(start), TruncateTime(end)
	if (registrationStart == nil) != (registrationEnd == nil) {
		return nil, fmt.Errorf(
			"%w: registration start and end must be both set or both empty",
			ErrCompetitionInvalidWindow,
		)
	}

	c := &Competition{
		Start:        start,
		End:          end,
		StableAsset:  stableAsset,
		InitialGrant: initialGrant,
	}

	if registrationStart != nil {
		regStart := TruncateTime(*registrationStart)
		regEnd := TruncateTime(*registrationEnd)
		if regStart.After(regEnd) {
			return nil, fmt.Errorf(
				"%w: registration start must not be after registration end",
				ErrCompetitionInvalidWindow,
			)
		}
		if regEnd.After(start) {
			return nil, fmt.Errorf(
				"%w: registration end must not be after competition start",
				ErrCompetitionInvalidWindow,
			)
		}
		if start.After(end) {
			return nil, fmt.Errorf(
				"%w: competition start must not be after competition end",
				ErrCompetitionInvalidWindow,
			)
		}
		c.RegistrationStart = &regStart
		c.RegistrationEnd = &regEnd
		return c, nil
	}

	if !start.Before(end) {
		return nil, fmt.Errorf(
			"%w: competition start must be before competition end",
			ErrCompetitionInvalidWindow,
		)
	}
	return c, nil
}

// HasRegistrationWindow returns whether the competition has a dedicated
// registration window.
func (c *Competition) HasRegistrationWindow() bool {
	return c.RegistrationEnd != nil
}

// RegistrationCutoff returns the instant from which registration is not
// possible anymore.
func (c *Competition) RegistrationCutoff() time.Time {
	if c.HasRegistrationWindow() {
		return *c.RegistrationEnd
	}
	return c.Start
}

// CanRegister returns an error if registration is not permitted at the given
// instant. The registration start is informational: only the cutoff gates
// registration.
func (c *Competition) CanRegister(now time.Time) error {
	now = TruncateTime(now)
	if cutoff := c.RegistrationCutoff(); !now.Before(cutoff) {
		return fmt.Errorf(
			"%w (cutoff %s)", ErrRegistrationClosed, cutoff.Format(time.RFC3339),
		)
	}
	return nil
}

// CanTrade returns an error if trading is not permitted at the given instant.
func (c *Competition) CanTrade(now time.Time) error {
	now = TruncateTime(now)
	if now.Before(c.Start) {
		return fmt.Errorf(
			"%w (start %s)", ErrCompetitionNotStarted, c.Start.Format(time.RFC3339),
		)
	}
	if !now.Before(c.End) {
		return fmt.Errorf(
			"%w (end %s)", ErrCompetitionEnded, c.End.Format(time.RFC3339),
		)
	}
	return nil
}

// PhaseAt returns the phase of the competition at the given instant.
func (c *Competition) PhaseAt(now time.Time) Phase {
	if c.CanRegister(now) == nil {
		return PhaseRegistration
	}
	now = TruncateTime(now)
	if now.Before(c.Start) {
		return PhaseBeforeStart
	}
	if now.Before(c.End) {
		return PhaseRunning
	}
	return PhaseEnded
}

// ChangeStart replaces the start bound without validating it against the
// other bounds.
func (c *Competition) ChangeStart(t time.Time) {
	c.Start = TruncateTime(t)
}

// ChangeEnd replaces the end bound without validating it against the other
// bounds.
func (c *Competition) ChangeEnd(t time.Time) {
	c.End = TruncateTime(t)
}

// CompetitionRepository is the abstraction for any kind of database intended
// to persist the Competition state.
type CompetitionRepository interface {
	// GetCompetition returns the competition, ErrCompetitionNotFound if not
	// initialized yet.
	GetCompetition(ctx context.Context) (*Competition, error)
	// InitCompetition stores the competition if none exists yet, and returns
	// the stored one.
	InitCompetition(ctx context.Context, c Competition) (*Competition, error)
	// UpdateCompetition updates the competition through the closure, in a
	// transactional way.
	UpdateCompetition(
		ctx context.Context, updateFn func(c *Competition) (*Competition, error),
	) error
}
