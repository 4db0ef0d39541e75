// Package diagnostic provides structured warnings and errors collected while
// validating footprint configuration.
//
// Key capabilities:
//   - Unknown primitive kind reports
//   - Out of range width reports
//   - Duplicate kind spellings (byte and uint8, rune and int32)
package diagnostic
