package ports

import "github.com/colosseum-network/colosseumd/internal/core/domain"

// RepoManager interface defines the methods to access the repositories of
// every domain entity.
type RepoManager interface {
	PriceRepository() domain.PriceRepository
	AssetRepository() domain.AssetRepository
	VaultRepository() domain.VaultRepository
	CompetitionRepository() domain.CompetitionRepository
	TradeRepository() domain.TradeRepository

	Close()
}
