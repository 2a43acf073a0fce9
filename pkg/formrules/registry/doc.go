// Package registry provides a generic thread-safe registry for values indexed by key.
//
// formrules keeps two registries: operator symbols for the postfix evaluator
// and expression types for the form validator. Both follow the same pattern of
// shared defaults plus caller overrides:
//
//	defaults := registry.From(map[string]BinaryOp{"+": add})
//
//	ops := defaults.Clone()
//	ops.RegisterMany(map[string]BinaryOp{"+": concat}) // last write wins
//
//	op, ok := ops.Get("+")
//
// Clone and Snapshot copy the entries, so a default table handed to many
// evaluators is never mutated by any of them.
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use.
package registry
