package wallet

import "errors"

var (
	ErrInsufficientFunds   = errors.New("insufficient wallet balance")
	ErrUserNotFound        = errors.New("wallet owner not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotPending          = errors.New("only pending transactions can be overridden")
	ErrInvalidStatus       = errors.New("status must be successful or failed")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
)
