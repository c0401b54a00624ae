// Package datastore provides error handling helpers for database operations
package datastore

import (
	"github.com/geosemantic/skosload/internal/errors"
)

// Fatal error sentinels for the persistence stage.
var (
	// ErrPersistence indicates a transactional write failure; the run was
	// rolled back and the database is unchanged.
	ErrPersistence = errors.NewStd("persistence failure")

	// ErrDuplicateThesaurus indicates a strict-mode name collision,
	// detected before any write.
	ErrDuplicateThesaurus = errors.NewStd("thesaurus identifier already exists")
)

// dbError creates a properly categorized database error with context
func dbError(err error, operation string, context ...any) error {
	builder := errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation)

	for i := 0; i < len(context)-1; i += 2 {
		if key, ok := context[i].(string); ok {
			builder = builder.Context(key, context[i+1])
		}
	}

	return builder.Build()
}

// notFoundError creates a not found error
func notFoundError(resource, identifier string) error {
	return errors.Newf("%s not found", resource).
		Component("datastore").
		Category(errors.CategoryNotFound).
		Context("resource", resource).
		Context("identifier", identifier).
		Build()
}

// conflictError creates a conflict error for identifier collisions
func conflictError(err error, operation, identifier string) error {
	return errors.New(err).
		Component("datastore").
		Category(errors.CategoryConflict).
		Context("operation", operation).
		Context("identifier", identifier).
		Build()
}

// errorsIs is a local alias so files in this package match sentinels
// without importing two errors packages.
func errorsIs(err, target error) bool {
	return errors.Is(err, target)
}
