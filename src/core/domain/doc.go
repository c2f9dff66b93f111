// Package domain contains the core domain model for the application.
//
// This package defines:
//   - User: the stored record, soft-deleted when DeleteDate is set
//   - Value: a tagged union over {undefined, null, number, string, object, array}
//     that loosely-typed input is resolved into once, at the boundary
//   - Identifier and name rules (ParseID, ValidName)
//   - Domain Errors: one sentinel per failure kind, wrapped by DomainError
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, CLI, etc.)
//
// Example:
//
//	user := domain.ValueOf(map[string]any{"name": "Petrov Igor"})
//	if !domain.HasValidName(user) {
//	    return domain.NewValidationError("name", "must be two capitalized words")
//	}
package domain
