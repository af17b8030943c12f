package domain

// CredentialType enumerates the closed set of credential variants a
// participant can present.
type CredentialType int

const (
	CredentialTypeUnspecified CredentialType = iota
	// CredentialTypeToken is a signed bearer token.
	CredentialTypeToken
	// CredentialTypeBadge is a non-fungible badge id with a signature tag.
	CredentialTypeBadge
)

func (t CredentialType) String() string {
	switch t {
	case CredentialTypeToken:
		return "TOKEN"
	case CredentialTypeBadge:
		return "BADGE"
	default:
		return "UNSPECIFIED"
	}
}

// Credential is what a participant presents to prove its identity. Class is
// the credential class it claims to belong to, it must match the class
// required by the competition.
type Credential struct {
	Type  CredentialType
	Class string
	Value string
}
