// Package orchestrator wires the questionnaire pipeline: it loads a
// definition, compiles the schema and UI hints, builds a validator and
// publishes the result as an immutable snapshot that can be hot-swapped.
package orchestrator
