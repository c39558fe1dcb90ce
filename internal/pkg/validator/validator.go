// Package validator checks request structs through `validate` tags. Failures
// come back as a field-to-message map keyed by snake_case field names so the
// HTTP layer can return them unchanged.
package validator

type Validator interface {
	Validate(data any) error
}
