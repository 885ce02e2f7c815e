// Package question defines the questionnaire model: an ordered QuestionList
// of typed questions (Integer, FreeText, TrueOrFalse, FixedList and the
// recursive ArrayOf). The variant set is closed; projections such as the
// schema compiler or the UI-hint compiler implement Visitor so that a new
// variant cannot be added without every projection handling it.
//
// Definitions are decoded strictly from JSON or YAML. Unknown fields, unknown
// variant tags, type mismatches and missing required fields all fail with a
// *DecodeError naming the offending path; nothing is defaulted silently.
package question
