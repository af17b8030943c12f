package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

type repoManager struct {
	mainStore  *badgerhold.Store
	priceStore *badgerhold.Store
	tradeStore *badgerhold.Store

	priceRepository       domain.PriceRepository
	assetRepository       domain.AssetRepository
	vaultRepository       domain.VaultRepository
	competitionRepository domain.CompetitionRepository
	tradeRepository       domain.TradeRepository
}

// NewRepoManager opens (or creates if not exists) the badger stores in the
// given base directory. If the directory is empty, the stores are kept in
// memory. It creates a dedicated store for prices and for trades, everything
// else lives in the main one.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var mainDir, priceDir, tradeDir string
	if len(baseDbDir) > 0 {
		mainDir = filepath.Join(baseDbDir, "main")
		priceDir = filepath.Join(baseDbDir, "prices")
		tradeDir = filepath.Join(baseDbDir, "trades")
	}

	mainDb, err := createDb(mainDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening main db: %w", err)
	}

	priceDb, err := createDb(priceDir, logger)
	if err != nil {
		mainDb.Close()
		return nil, fmt.Errorf("opening prices db: %w", err)
	}

	tradeDb, err := createDb(tradeDir, logger)
	if err != nil {
		mainDb.Close()
		priceDb.Close()
		return nil, fmt.Errorf("opening trades db: %w", err)
	}

	return &repoManager{
		mainStore:             mainDb,
		priceStore:            priceDb,
		tradeStore:            tradeDb,
		priceRepository:       NewPriceRepositoryImpl(priceDb),
		assetRepository:       NewAssetRepositoryImpl(mainDb),
		vaultRepository:       NewVaultRepositoryImpl(mainDb),
		competitionRepository: NewCompetitionRepositoryImpl(mainDb),
		tradeRepository:       NewTradeRepositoryImpl(tradeDb),
	}, nil
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

func (r *repoManager) Close() {
	r.mainStore.Close()
	r.priceStore.Close()
	r.tradeStore.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}

// maxUpdateAttempts bounds the retries of a transaction aborted by a
// concurrent write on the same keys.
const maxUpdateAttempts = 5

// updateWithRetry runs fn in a read-write transaction and retries it from
// scratch when the commit fails with badger.ErrConflict. fn must be free of
// side effects outside the transaction.
func updateWithRetry(db *badger.DB, fn func(tx *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		if err = db.Update(fn); err != badger.ErrConflict {
			return err
		}
		log.Debugf("badger: transaction conflict, retrying (attempt %d)", attempt+1)
	}
	return err
}
