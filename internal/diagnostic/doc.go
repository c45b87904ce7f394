// Package diagnostic provides structured warnings and errors produced while
// normalizing a header.
//
// Transformations that succeed but lose information (a flattened key that
// overwrites another, a shortened key that replaces an earlier one) record a
// warning instead of failing, so callers can decide whether to surface it.
package diagnostic
