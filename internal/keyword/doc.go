// Package keyword looks up header values by keyword prefix.
//
// A Spec is either a single keyword or an ordered sequence of keywords:
//
//	keyword.Single("OBJECT")          // any top-level key starting with OBJECT
//	keyword.Sequence("MJD", "START")  // MJD -> START, joined as MJD_START
//
// The two modes deliberately differ when several keys share a prefix. A
// single keyword returns the LAST matching key in header order; each step of
// a sequence takes the FIRST match. Both behaviours are relied upon by
// existing headers and are kept separate on purpose.
//
// # Units
//
// A parenthesized suffix in the composite key is read as a unit annotation:
// resolving "MJD_START(day)" yields name "MJD_START" and unit "day".
//
// # Sequences over flattened headers
//
// A sequence step normally descends into a nested header. When the matching
// key is a scalar that already spells out the remaining keywords joined by
// the separator ("MJD_START(day)" for MJD, START with "_"), the key is taken
// as the final match. This lets the same Spec resolve both the nested and the
// flattened form of a header.
package keyword
