package usecase

import (
	"errors"
	"fmt"
)

// Category sentinels. The HTTP layer maps these to status codes; handlers and
// clients branch on them with errors.Is.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Specific violations, each wrapped into its category so errors.Is matches at
// both granularities: the UI refreshes on conflicts, re-edits on validation
// failures, and gives up on authorization failures.
var (
	ErrDuplicateName       = fmt.Errorf("%w: name already taken", ErrConflict)
	ErrScoreOutOfRange     = fmt.Errorf("%w: score out of range", ErrInvalidInput)
	ErrIncompleteRound     = fmt.Errorf("%w: round does not cover the roster", ErrInvalidInput)
	ErrStaleRound          = fmt.Errorf("%w: round number is no longer next", ErrConflict)
	ErrAlreadyAdmin        = fmt.Errorf("%w: user is already an admin", ErrConflict)
	ErrCannotRemoveCreator = fmt.Errorf("%w: the set creator cannot be removed", ErrUnauthorized)
	ErrNotAnAdmin          = fmt.Errorf("%w: user is not an admin", ErrUnauthorized)
	ErrUserNotFound        = fmt.Errorf("%w: no account for that email", ErrNotFound)
	ErrSetNotFound         = fmt.Errorf("%w: game set does not exist", ErrNotFound)
)
