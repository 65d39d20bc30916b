package service

import "errors"

// Classified service errors. Store failures are logged at the operation
// boundary and mapped to exactly one of these; root causes never reach the
// caller.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserCreate         = errors.New("error adding user")
	ErrUserUpdate         = errors.New("error updating user details")
	ErrUserFetch          = errors.New("error fetching users")
	ErrCashkickFetch      = errors.New("error fetching cashkicks")
	ErrCashkickCreate     = errors.New("error adding cashkick")
	ErrContractFetch      = errors.New("error fetching contracts")
	ErrContractCreate     = errors.New("error adding contracts")
)
