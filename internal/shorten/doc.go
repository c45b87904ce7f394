// Package shorten compresses overlong header keys to a bounded length.
//
// A key longer than the limit loses every vowel and is then truncated:
//
//	EXPOSURE_TIME -> XPSR_TM
//	OBSERVATORY   -> BSRVTRY
//
// The shortened key receives the original value, and a substitution record
// prefix+short -> original is stored next to it so the original name can be
// recovered (see Restore and Original).
//
// # Collisions
//
// Two overlong keys may shorten to the same form, or a shortened form may
// equal a key that is already present. The Policy decides what happens:
//
//   - PolicyError (default) fails with a *CollisionError and leaves the
//     header untouched.
//   - PolicyOverwrite lets the later key win, losing the earlier value and
//     its record. Each loss is reported as a diagnostic warning.
//   - PolicySuffix replaces the tail of the shortened key with a counter
//     until it is unique, keeping it within the limit.
//
// # Lifecycle
//
// Shortening is meant to run once per header. Substitution records are
// ordinary keys: a second pass with the same limit shortens any record that
// is itself too long.
package shorten
