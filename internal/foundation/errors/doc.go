// Package errors provides the classified error primitives used across docnav.
//
// Every error that leaves a package boundary is a ClassifiedError carrying a
// category (what failed), a severity (how much of the build it affects) and a
// small structured context used for logging.
//
//	err := errors.NewError(errors.CategoryCatalog, "duplicate document id").
//		WithContext("id", doc.ID).
//		WithCause(cause).
//		Build()
//
// Severity drives degradation: SeverityWarning errors are logged and the build
// continues with the affected input treated as absent.
package errors
