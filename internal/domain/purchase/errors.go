package purchase

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserBlocked      = errors.New("user account is blocked")
	ErrServiceNotFound  = errors.New("service not found")
	ErrServiceInactive  = errors.New("service is not available for purchase")
	ErrInvalidVariation = errors.New("variation not found on service")
	ErrInvalidAmount    = errors.New("a positive amount is required for this category")
	ErrMissingInput     = errors.New("required purchase input is missing")
	ErrDeliveryFailed   = errors.New("no provider could deliver the purchase")
)
