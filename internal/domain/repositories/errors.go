package repositories

import "errors"

// ErrUniqueViolation marks a write rejected by a storage uniqueness constraint.
// Repositories wrap driver errors with it; services translate it to a domain conflict.
var ErrUniqueViolation = errors.New("unique constraint violation")

// ErrSerializationFailure marks a transaction aborted because a concurrent
// transaction changed the rows it read. The whole operation may be retried.
var ErrSerializationFailure = errors.New("serialization failure")
