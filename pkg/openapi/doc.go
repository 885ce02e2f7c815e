// Package openapi exports a questionnaire as an OpenAPI 3 document so
// transport collaborators can publish the schema, UI-hint and submission
// endpoints without re-deriving the answer contract. The answer schema is a
// question Visitor projection; FixedList labels travel as x-enumNames.
package openapi
