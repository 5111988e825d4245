package billing

import (
	"errors"

	"community-app/internal/domain/entitlement"
)

// Sentinel errors returned by the checkout initiator and tier change
// calculator. Handlers map these onto HTTP statuses; raw provider
// errors never leave this package unclassified.
var (
	ErrInvalidTier          = errors.New("unknown tier")
	ErrInvalidBillingPeriod = errors.New("unknown billing period")
	ErrAlreadySubscribed    = errors.New("already subscribed")
	ErrNoActiveSubscription = errors.New("no active subscription to change")
	ErrNoOpChange           = errors.New("already on the requested tier")
)

type Kind int

const (
	KindUnknown Kind = iota
	KindTransient
	KindValidation
	KindConflict
)

// KindOf classifies an error from this package.
//
// Transient errors are retryable. Validation errors need a different
// request. Conflict errors describe a state the user must understand
// (already subscribed, no-op change), so their message is user-facing.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, entitlement.ErrSourceUnavailable):
		return KindTransient
	case errors.Is(err, ErrInvalidTier),
		errors.Is(err, ErrInvalidBillingPeriod),
		errors.Is(err, ErrNoActiveSubscription):
		return KindValidation
	case errors.Is(err, ErrAlreadySubscribed),
		errors.Is(err, ErrNoOpChange):
		return KindConflict
	default:
		return KindUnknown
	}
}
