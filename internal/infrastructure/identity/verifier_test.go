package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/identity"
	"github.com/stretchr/testify/require"
)

var (
	ctx    = context.Background()
	secret = []byte("supersecret")
	class  = "colosseum-participant"
)

func TestVerify(t *testing.T) {
	t.Parallel()

	v, err := identity.NewVerifier(secret)
	require.NoError(t, err)

	token, err := v.NewToken(class, "alice", time.Hour)
	require.NoError(t, err)
	badge, err := v.NewBadge(class, "bob")
	require.NoError(t, err)

	id, err := v.Verify(ctx, domain.Credential{
		Type: domain.CredentialTypeToken, Class: class, Value: token,
	}, class)
	require.NoError(t, err)
	require.Equal(t, "alice", id)

	id, err = v.Verify(ctx, domain.Credential{
		Type: domain.CredentialTypeBadge, Class: class, Value: badge,
	}, class)
	require.NoError(t, err)
	require.Equal(t, "bob", id)
}

func TestFailingVerify(t *testing.T) {
	t.Parallel()

	v, err := identity.NewVerifier(secret)
	require.NoError(t, err)
	other, err := identity.NewVerifier([]byte("othersecret"))
	require.NoError(t, err)

	validToken, _ := v.NewToken(class, "alice", 0)
	expiredToken, _ := v.NewToken(class, "alice", -time.Hour)
	forgedToken, _ := other.NewToken(class, "alice", 0)
	otherClassToken, _ := v.NewToken("other-class", "alice", 0)
	validBadge, _ := v.NewBadge(class, "bob")
	forgedBadge, _ := other.NewBadge(class, "bob")
	otherClassBadge, _ := v.NewBadge("other-class", "bob")

	tests := []struct {
		name          string
		credential    domain.Credential
		expectedError error
	}{
		{
			name:          "declared_class_mismatch",
			credential:    domain.Credential{Type: domain.CredentialTypeToken, Class: "other-class", Value: validToken},
			expectedError: domain.ErrCredentialClassMismatch,
		},
		{
			name:          "token_class_mismatch",
			credential:    domain.Credential{Type: domain.CredentialTypeToken, Class: class, Value: otherClassToken},
			expectedError: domain.ErrCredentialClassMismatch,
		},
		{
			name:          "badge_class_mismatch",
			credential:    domain.Credential{Type: domain.CredentialTypeBadge, Class: class, Value: otherClassBadge},
			expectedError: domain.ErrCredentialClassMismatch,
		},
		{
			name:          "forged_token",
			credential:    domain.Credential{Type: domain.CredentialTypeToken, Class: class, Value: forgedToken},
			expectedError: domain.ErrCredentialInvalid,
		},
		{
			name:          "forged_badge",
			credential:    domain.Credential{Type: domain.CredentialTypeBadge, Class: class, Value: forgedBadge},
			expectedError: domain.ErrCredentialInvalid,
		},
		{
			name:          "expired_token",
			credential:    domain.Credential{Type: domain.CredentialTypeToken, Class: class, Value: expiredToken},
			expectedError: domain.ErrCredentialInvalid,
		},
		{
			name:          "badge_as_token",
			credential:    domain.Credential{Type: domain.CredentialTypeToken, Class: class, Value: validBadge},
			expectedError: domain.ErrCredentialInvalid,
		},
		{
			name:          "malformed_badge",
			credential:    domain.Credential{Type: domain.CredentialTypeBadge, Class: class, Value: "bob"},
			expectedError: domain.ErrCredentialInvalid,
		},
		{
			name:          "unknown_type",
			credential:    domain.Credential{Type: domain.CredentialTypeUnspecified, Class: class, Value: validToken},
			expectedError: domain.ErrCredentialUnknownType,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			id, err := v.Verify(ctx, tt.credential, class)
			require.ErrorIs(t, err, tt.expectedError)
			require.ErrorIs(t, err, domain.ErrCredential)
			require.Empty(t, id)
		})
	}
}

func TestFailingNewCredential(t *testing.T) {
	t.Parallel()

	_, err := identity.NewVerifier(nil)
	require.Error(t, err)

	v, err := identity.NewVerifier(secret)
	require.NoError(t, err)

	_, err = v.NewToken("", "alice", 0)
	require.Error(t, err)
	_, err = v.NewBadge("a:b", "alice")
	require.Error(t, err)
	_, err = v.NewBadge(class, "alice.bob")
	require.Error(t, err)
}
