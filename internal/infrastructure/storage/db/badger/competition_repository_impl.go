package dbbadger

import (
	"context"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

const competitionKey = "competition"

type competitionRepositoryImpl struct {
	store *badgerhold.Store
}

// NewCompetitionRepositoryImpl returns a badger implementation of
// domain.CompetitionRepository.
func NewCompetitionRepositoryImpl(
	store *badgerhold.Store,
) domain.CompetitionRepository {
	return &competitionRepositoryImpl{store}
}

func (r *competitionRepositoryImpl) GetCompetition(
	_ context.Context,
) (*domain.Competition, error) {
	var competition domain.Competition
	if err := r.store.Get(competitionKey, &competition); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrCompetitionNotFound
		}
		return nil, err
	}
	return &competition, nil
}

func (r *competitionRepositoryImpl) InitCompetition(
	_ context.Context, competition domain.Competition,
) (*domain.Competition, error) {
	var stored domain.Competition
	err := updateWithRetry(r.store.Badger(), func(tx *badger.Txn) error {
		err := r.store.TxGet(tx, competitionKey, &stored)
		if err == nil {
			return nil
		}
		if err != badgerhold.ErrNotFound {
			return err
		}
		stored = competition
		return r.store.TxInsert(tx, competitionKey, &competition)
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *competitionRepositoryImpl) UpdateCompetition(
	_ context.Context,
	updateFn func(c *domain.Competition) (*domain.Competition, error),
) error {
	return updateWithRetry(r.store.Badger(), func(tx *badger.Txn) error {
		var competition domain.Competition
		if err := r.store.TxGet(tx, competitionKey, &competition); err != nil {
			if err == badgerhold.ErrNotFound {
				return domain.ErrCompetitionNotFound
			}
			return err
		}

		updatedCompetition, err := updateFn(&competition)
		if err != nil {
			return err
		}
		return r.store.TxUpdate(tx, competitionKey, updatedCompetition)
	})
}
