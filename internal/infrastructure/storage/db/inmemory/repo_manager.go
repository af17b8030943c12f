package inmemory

import (
	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/core/ports"
)

type repoManager struct {
	priceRepository       domain.PriceRepository
	assetRepository       domain.AssetRepository
	vaultRepository       domain.VaultRepository
	competitionRepository domain.CompetitionRepository
	tradeRepository       domain.TradeRepository
}

// NewRepoManager returns a RepoManager whose repositories keep everything in
// memory. Nothing survives a restart.
func NewRepoManager() ports.RepoManager {
	return &repoManager{
		priceRepository:       NewPriceRepositoryImpl(),
		assetRepository:       NewAssetRepositoryImpl(),
		vaultRepository:       NewVaultRepositoryImpl(),
		competitionRepository: NewCompetitionRepositoryImpl(),
		tradeRepository:       NewTradeRepositoryImpl(),
	}
}

func (r *repoManager) PriceRepository() domain.PriceRepository {
	return r.priceRepository
}

func (r *repoManager) AssetRepository() domain.AssetRepository {
	return r.assetRepository
}

func (r *repoManager) VaultRepository() domain.VaultRepository {
	return r.vaultRepository
}

func (r *repoManager) CompetitionRepository() domain.CompetitionRepository {
	return r.competitionRepository
}

func (r *repoManager) TradeRepository() domain.TradeRepository {
	return r.tradeRepository
}

func (r *repoManager) Close() {}
