// Package jsonschema models the Draft-7 documents produced by the compiler.
//
// The node types cover exactly the constructs questionnaires need: integer,
// string, boolean, string enumerations, arrays and a single closed root
// object. Nodes encode with a leading "type" tag and camelCase keywords, and
// optional keywords are omitted instead of serialized as null. Diff and
// MergePatch help review how a definition change alters the answer contract.
package jsonschema
