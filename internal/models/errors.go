package models

import "errors"

// Sentinel errors for the review domain. Handlers map these onto HTTP
// statuses with errors.Is; everything else is treated as a store failure.
var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyVoted     = errors.New("already voted on this review")
	ErrNotFound         = errors.New("record not found")
)
