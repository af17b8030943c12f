package inmemory

import (
	"context"
	"sync"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
)

type competitionRepositoryImpl struct {
	competition *domain.Competition
	lock        *sync.RWMutex
}

// NewCompetitionRepositoryImpl returns a new uninitialized in memory
// CompetitionRepository.
func NewCompetitionRepositoryImpl() domain.CompetitionRepository {
	return &competitionRepositoryImpl{
		lock: &sync.RWMutex{},
	}
}

func (r *competitionRepositoryImpl) GetCompetition(
	_ context.Context,
) (*domain.Competition, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.competition == nil {
		return nil, domain.ErrCompetitionNotFound
	}
	c := *r.competition
	return &c, nil
}

func (r *competitionRepositoryImpl) InitCompetition(
	_ context.Context, competition domain.Competition,
) (*domain.Competition, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.competition == nil {
		r.competition = &competition
	}
	c := *r.competition
	return &c, nil
}

func (r *competitionRepositoryImpl) UpdateCompetition(
	_ context.Context,
	updateFn func(c *domain.Competition) (*domain.Competition, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.competition == nil {
		return domain.ErrCompetitionNotFound
	}

	c := *r.competition
	updatedCompetition, err := updateFn(&c)
	if err != nil {
		return err
	}

	r.competition = updatedCompetition
	return nil
}
