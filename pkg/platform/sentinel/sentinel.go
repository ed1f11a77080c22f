package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Storage backends and the API client
// return these (optionally wrapped) so callers can translate them into
// user-facing messages or domain errors.
//
//   - ErrNotFound: key or remote entity does not exist
//   - ErrUnauthorized: the remote API rejected the credentials (HTTP 401)
//   - ErrInvalidState: local state is not valid for the requested operation
//   - ErrUnavailable: backend or upstream temporarily unreachable
//   - ErrSchemaVersion: persisted data was written with an unknown schema version
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidState  = errors.New("invalid state")
	ErrUnavailable   = errors.New("unavailable")
	ErrSchemaVersion = errors.New("unsupported schema version")
)
