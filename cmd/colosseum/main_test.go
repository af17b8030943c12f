package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/identity"
	"github.com/stretchr/testify/require"
)

func TestState(t *testing.T) {
	colosseumDataDir = filepath.Join(t.TempDir(), "cli")
	statePath = filepath.Join(colosseumDataDir, "state.json")

	_, err := getState()
	require.Error(t, err)

	err = setState(map[string]string{
		operatorRPCKey: "localhost:9000",
		traderRPCKey:   "localhost:9945",
	})
	require.NoError(t, err)

	err = setState(map[string]string{traderRPCKey: "localhost:19945"})
	require.NoError(t, err)

	state, err := getState()
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		operatorRPCKey: "localhost:9000",
		traderRPCKey:   "localhost:19945",
	}, state)
}

func TestStoredCredential(t *testing.T) {
	colosseumDataDir = filepath.Join(t.TempDir(), "cli")
	statePath = filepath.Join(colosseumDataDir, "state.json")

	_, err := getCredential()
	require.Error(t, err)

	verifier, err := identity.NewVerifier([]byte("secret"))
	require.NoError(t, err)
	token, err := verifier.NewToken("contestant", "alice", time.Hour)
	require.NoError(t, err)

	err = storeCredential("TOKEN", "contestant", token)
	require.NoError(t, err)

	credential, err := getCredential()
	require.NoError(t, err)
	require.Equal(t, "TOKEN", credential.Type)
	require.Equal(t, "contestant", credential.Class)

	id, err := verifier.Verify(context.Background(), domain.Credential{
		Type:  domain.CredentialTypeToken,
		Class: credential.Class,
		Value: credential.Value,
	}, "contestant")
	require.NoError(t, err)
	require.Equal(t, "alice", id)
}

func TestParseTime(t *testing.T) {
	ts, err := parseTime("2024-03-10T00:00:00Z")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC).Unix(), ts)

	_, err = parseTime("tomorrow")
	require.Error(t, err)
}
