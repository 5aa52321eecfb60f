// Package errors provides the classified error primitives used across refdoc.
//
// Every failure that aborts a generation run is a ClassifiedError carrying a
// category (config, validation, filesystem, build, docs, internal), a severity
// and free-form context. Build-contract violations additionally wrap one of the
// sentinel errors in contract.go so callers can test them with errors.Is.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryBuild, "duplicate link name").
//		Fatal().
//		WithContext("name", name).
//		WithCause(errors.ErrDuplicateName).
//		Build()
package errors
