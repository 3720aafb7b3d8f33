package catalog

import "errors"

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrInvalidVariation = errors.New("variation not found on service")
)
