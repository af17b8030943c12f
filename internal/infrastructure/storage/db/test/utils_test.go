package db_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"testing"

	"github.com/colosseum-network/colosseumd/internal/core/ports"
	dbbadger "github.com/colosseum-network/colosseumd/internal/infrastructure/storage/db/badger"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/storage/db/inmemory"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

type repoManager struct {
	Name string
	ports.RepoManager
}

// createRepoManagers returns a fresh instance of every RepoManager
// implementation: in memory, badger in memory and badger on disk.
func createRepoManagers(t *testing.T) []repoManager {
	datadir, err := os.MkdirTemp("", "colosseumdb")
	require.NoError(t, err)

	badgerInMemory, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)

	badgerOnDisk, err := dbbadger.NewRepoManager(datadir, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		badgerInMemory.Close()
		badgerOnDisk.Close()
		os.RemoveAll(datadir)
	})

	return []repoManager{
		{Name: "inmemory", RepoManager: inmemory.NewRepoManager()},
		{Name: "badger_inmemory", RepoManager: badgerInMemory},
		{Name: "badger", RepoManager: badgerOnDisk},
	}
}

func randomHex(len int) string {
	return hex.EncodeToString(randomBytes(len))
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	//nolint
	rand.Read(b)
	return b
}
