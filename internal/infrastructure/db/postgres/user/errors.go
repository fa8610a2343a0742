package user

import "errors"

// ErrUserConflict is returned when an insert races another reconciliation for
// the same yandex id or email and loses on the unique constraint.
var ErrUserConflict = errors.New("user already exists with different credentials")
