package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/golang-jwt/jwt"
)

const (
	classSeparator = ":"
	tagSeparator   = "."
)

var signingMethod = jwt.SigningMethodHS256

type tokenClaims struct {
	Class string `json:"cls"`
	jwt.StandardClaims
}

// Verifier verifies and issues HMAC signed credentials.
type Verifier struct {
	secret []byte
}

// NewVerifier returns an identity verifier for credentials signed with the
// given HMAC secret. Tokens are HS256 JWTs carrying the identity in the sub
// claim and the class in the cls claim. Badges are non fungible ids in the
// form <class>:<id>.<tag> where tag is the HS256 signature of <class>:<id>.
func NewVerifier(secret []byte) (*Verifier, error) {
	if len(secret) <= 0 {
		return nil, fmt.Errorf("missing credential secret")
	}
	return &Verifier{secret}, nil
}

func (v *Verifier) Verify(
	_ context.Context, credential domain.Credential, requiredClass string,
) (string, error) {
	if credential.Class != requiredClass {
		return "", fmt.Errorf(
			"%w: expected %s, got %s",
			domain.ErrCredentialClassMismatch, requiredClass, credential.Class,
		)
	}

	var class, id string
	var err error
	switch credential.Type {
	case domain.CredentialTypeToken:
		class, id, err = v.parseToken(credential.Value)
	case domain.CredentialTypeBadge:
		class, id, err = v.parseBadge(credential.Value)
	default:
		return "", domain.ErrCredentialUnknownType
	}
	if err != nil {
		return "", err
	}

	if class != requiredClass {
		return "", fmt.Errorf(
			"%w: expected %s, got %s",
			domain.ErrCredentialClassMismatch, requiredClass, class,
		)
	}
	return id, nil
}

// NewToken returns a token credential for the given class and identity,
// expiring after ttl if not zero.
func (v *Verifier) NewToken(class, id string, ttl time.Duration) (string, error) {
	if err := validateClassAndID(class, id); err != nil {
		return "", err
	}

	claims := tokenClaims{
		Class: class,
		StandardClaims: jwt.StandardClaims{
			Subject:  id,
			IssuedAt: time.Now().Unix(),
		},
	}
	if ttl != 0 {
		claims.ExpiresAt = time.Now().Add(ttl).Unix()
	}
	return jwt.NewWithClaims(signingMethod, claims).SignedString(v.secret)
}

// NewBadge returns a badge credential for the given class and identity.
func (v *Verifier) NewBadge(class, id string) (string, error) {
	if err := validateClassAndID(class, id); err != nil {
		return "", err
	}

	badgeID := class + classSeparator + id
	tag, err := signingMethod.Sign(badgeID, v.secret)
	if err != nil {
		return "", err
	}
	return badgeID + tagSeparator + tag, nil
}

func (v *Verifier) parseToken(value string) (string, string, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(
		value, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return v.secret, nil
		},
	)
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("%w: %v", domain.ErrCredentialInvalid, err)
	}
	if claims.Subject == "" {
		return "", "", fmt.Errorf("%w: missing subject", domain.ErrCredentialInvalid)
	}
	return claims.Class, claims.Subject, nil
}

func (v *Verifier) parseBadge(value string) (string, string, error) {
	i := strings.LastIndex(value, tagSeparator)
	if i <= 0 {
		return "", "", fmt.Errorf("%w: malformed badge", domain.ErrCredentialInvalid)
	}
	badgeID, tag := value[:i], value[i+1:]

	if err := signingMethod.Verify(badgeID, tag, v.secret); err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrCredentialInvalid, err)
	}

	class, id, ok := strings.Cut(badgeID, classSeparator)
	if !ok || id == "" {
		return "", "", fmt.Errorf("%w: malformed badge", domain.ErrCredentialInvalid)
	}
	return class, id, nil
}

func validateClassAndID(class, id string) error {
	if class == "" || strings.Contains(class, classSeparator) {
		return fmt.Errorf("class must be non empty and must not contain %q", classSeparator)
	}
	if id == "" || strings.Contains(id, tagSeparator) {
		return fmt.Errorf("id must be non empty and must not contain %q", tagSeparator)
	}
	return nil
}
