// Package match ranks header keys by similarity to a requested keyword.
//
// It backs the "did you mean" hints attached to keyword lookup failures.
//
// Key functions:
//   - NormalizeKey: folds a header key for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Similarity: turns the distance into a 0..1 score
//   - Suggest: ranks candidate keys against a keyword
package match
