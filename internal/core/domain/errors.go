package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the domain and the application
// services wraps exactly one of these, so that callers can branch on the kind
// of failure with errors.Is.
var (
	// ErrValidation is the category of malformed requests and violated
	// structural invariants.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is the category of missing entities (price, vault, asset).
	ErrNotFound = errors.New("not found")
	// ErrState is the category of operations rejected because of the current
	// competition phase.
	ErrState = errors.New("state error")
	// ErrInsufficientBalance is the category of vault debits exceeding the
	// stored balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrCredential is the category of credentials that cannot be resolved
	// into an identity.
	ErrCredential = errors.New("credential error")
	// ErrArithmetic is the category of division by zero, overflow and rounding
	// failures.
	ErrArithmetic = errors.New("arithmetic error")
)

// Price errors
var (
	// ErrPriceNotFound is returned when no entry exists for an ordered pair.
	ErrPriceNotFound = newError(ErrNotFound, "price not found")
	// ErrPriceInvalidValue is returned when setting a non positive price.
	ErrPriceInvalidValue = newError(ErrValidation, "price must be greater than zero")
	// ErrPriceInvalidPair is returned for empty or identical pair assets.
	ErrPriceInvalidPair = newError(ErrValidation, "price pair must be made of two distinct assets")
	// ErrPriceOutOfRange is returned for prices with too many integer or
	// fractional digits.
	ErrPriceOutOfRange = newError(ErrValidation, fmt.Sprintf("price must have at most %d integer and %d fractional digits", MaxAmountDigits, MaxAssetPrecision))
)

// Asset errors
var (
	// ErrAssetNotFound ...
	ErrAssetNotFound = newError(ErrNotFound, "asset not found")
	// ErrAssetInvalidID ...
	ErrAssetInvalidID = newError(ErrValidation, "asset id must not be empty")
	// ErrAssetInvalidPrecision ...
	ErrAssetInvalidPrecision = newError(ErrValidation, fmt.Sprintf("asset precision must be in range [0, %d]", MaxAssetPrecision))
	// ErrAssetNotAllowed is returned when trying to swap an asset that is not
	// in the allow-list.
	ErrAssetNotAllowed = newError(ErrValidation, "asset is not allowed as swap input")
	// ErrAssetAlreadyExists is returned when registering an asset twice with
	// different properties.
	ErrAssetAlreadyExists = newError(ErrValidation, "asset already exists with different properties")
)

// Vault errors
var (
	// ErrVaultNotFound is returned when an identity has no vault.
	ErrVaultNotFound = newError(ErrNotFound, "vault not found")
	// ErrVaultInsufficientBalance is returned when withdrawing more than the
	// stored balance, or withdrawing an asset never deposited.
	ErrVaultInsufficientBalance = newError(ErrInsufficientBalance, "not enough balance")
	// ErrVaultInvalidAmount is returned for non positive deposit or withdrawal
	// amounts.
	ErrVaultInvalidAmount = newError(ErrValidation, "amount must be greater than zero")
	// ErrAmountOutOfRange is returned for amounts with too many integer or
	// fractional digits.
	ErrAmountOutOfRange = newError(ErrValidation, fmt.Sprintf("amount must have at most %d integer and %d fractional digits", MaxAmountDigits, MaxAssetPrecision))
	// ErrVaultInvalidOwner ...
	ErrVaultInvalidOwner = newError(ErrValidation, "vault owner must not be empty")
)

// Competition errors
var (
	// ErrCompetitionInvalidWindow is returned when the window bounds are not
	// correctly ordered.
	ErrCompetitionInvalidWindow = newError(ErrValidation, "invalid competition window")
	// ErrRegistrationClosed is returned when registering at or after the
	// registration cutoff.
	ErrRegistrationClosed = newError(ErrState, "competition has already started, registration is closed")
	// ErrCompetitionNotStarted is returned when trading before the start.
	ErrCompetitionNotStarted = newError(ErrState, "competition has not started yet")
	// ErrCompetitionEnded is returned when trading at or after the end.
	ErrCompetitionEnded = newError(ErrState, "competition has already finished")
	// ErrAlreadyRegistered is returned when an identity that already owns a
	// vault registers again.
	ErrAlreadyRegistered = newError(ErrValidation, "identity is already registered")
	// ErrCompetitionNotFound is returned by repositories that have not been
	// initialized with a competition yet.
	ErrCompetitionNotFound = newError(ErrNotFound, "competition not found")
)

// Credential errors
var (
	// ErrCredentialInvalid is returned when a credential cannot be verified.
	ErrCredentialInvalid = newError(ErrCredential, "invalid credential")
	// ErrCredentialClassMismatch is returned when a credential belongs to a
	// class other than the required one.
	ErrCredentialClassMismatch = newError(ErrCredential, "credential class mismatch")
	// ErrCredentialUnknownType ...
	ErrCredentialUnknownType = newError(ErrCredential, "unknown credential type")
)

// Arithmetic errors
var (
	// ErrDivisionByZero is returned when the destination asset price is zero.
	ErrDivisionByZero = newError(ErrArithmetic, "division by zero")
	// ErrSupplyOverflow is returned when minting would exceed the supply cap.
	ErrSupplyOverflow = newError(ErrArithmetic, "supply overflow")
	// ErrAmountTooLow is returned when a conversion rounds down to zero.
	ErrAmountTooLow = newError(ErrArithmetic, "converted amount rounds down to zero")
	// ErrSupplyUnderflow is returned when burning more than the issued supply.
	ErrSupplyUnderflow = newError(ErrArithmetic, "supply underflow")
	// ErrIssuanceInvalidAmount is returned when minting or burning a non
	// positive amount.
	ErrIssuanceInvalidAmount = newError(ErrValidation, "issued or burned amount must be greater than zero")
)

// Swap errors
var (
	// ErrSwapInvalidAmount is returned when swapping a non positive amount.
	ErrSwapInvalidAmount = newError(ErrValidation, "swap amount must be greater than zero")
	// ErrSwapSameAsset is returned when source and destination asset match.
	ErrSwapSameAsset = newError(ErrValidation, "swap source and destination assets must differ")
	// ErrSwapAmountPrecision is returned when the swap amount has more
	// fractional digits than the source asset supports.
	ErrSwapAmountPrecision = newError(ErrValidation, "swap amount exceeds asset precision")
)

// Trade errors
var (
	// ErrTradeNotFound ...
	ErrTradeNotFound = newError(ErrNotFound, "trade not found")
)

func newError(category error, msg string) error {
	return fmt.Errorf("%w: %s", category, msg)
}
