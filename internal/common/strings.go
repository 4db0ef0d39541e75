package common

// UnknownStr is the name printed for enum values without one.
const UnknownStr = "unknown"
