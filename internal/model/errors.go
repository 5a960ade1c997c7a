package model

import "github.com/pkg/errors"

// Engine outcome taxonomy. Every ledger/quota/distributor operation resolves
// to exactly one of these or succeeds; the command layer maps each kind to a
// one-line user reply.
var (
	ErrInvalidReferralCode = errors.New("invalid referral code")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientPoints  = errors.New("insufficient points")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrQuotaExhausted      = errors.New("daily send quota exhausted")
	ErrNoAudience          = errors.New("no audience available")
	ErrStoreUnavailable    = errors.New("account store unavailable")
)

var (
	ErrScanSqlRow          = errors.New("failed to scan sql row")
	ErrCommandNotConverted = errors.New("command not converted")
	ErrNotAdminUser        = errors.New("user is not admin")
	ErrReferralCodeTaken   = errors.New("referral code already taken")
	ErrPaymentNotFound     = errors.New("pending payment not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
)

// WrapStore marks err as a store failure so that callers can match it with
// errors.Is(err, ErrStoreUnavailable) while the driver cause stays readable.
func WrapStore(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(ErrStoreUnavailable, "%s: %s", msg, err)
}
