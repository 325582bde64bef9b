package pg

import "errors"

var (
	ErrInvalidConnectionString = errors.New("invalid postgres connection string")
	ErrNotReady                = errors.New("postgres did not become ready within the given time period")
	ErrHealthcheckFailed       = errors.New("postgres healthcheck failed")
)
