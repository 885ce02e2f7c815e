// Package validation checks answer documents against compiled questionnaire
// schemas.
//
// NewValidator is the built-in engine and covers exactly the keywords the
// compiler emits. NewDraft7Validator runs the same document through a
// general-purpose Draft-7 implementation and maps its errors onto the same
// issue codes. Both collect every violation instead of stopping at the first.
//
// Payloads that are not valid JSON never produce issues; DecodeCandidate and
// ValidateJSON return a *MalformedInputError matching ErrMalformedInput.
package validation
