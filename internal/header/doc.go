// Package header provides the in-memory model of table header metadata.
//
// A Header is an insertion-ordered mapping from case-sensitive keys to
// values. Each Value is a tagged variant: either a scalar (string, integer,
// float, boolean or null) or a nested Header. Modelling nesting as a variant
// lets the transformations in sibling packages switch on Kind instead of
// inspecting dynamic types at every recursion step.
//
// # Ordering
//
// Lookups are order-independent, but iteration follows insertion order so
// serialized output is deterministic. Overwriting an existing key keeps its
// original position; new keys are appended.
//
// # Documents
//
// Headers travel between tools inside a small YAML document:
//
//	meta:
//	  OBJECT: M31
//	  MJD:
//	    START(day): 59000.0
//	    END(day): 59001.5
//	rows: 3
//
// LoadFile and Parse read such a document, WriteFile writes it back with the
// header keys in their original order.
package header
