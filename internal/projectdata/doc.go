// Package projectdata holds the typed JSON documents stored in the project and
// contact columns together with the pure helpers that transform and query them.
//
// Mutation helpers are copy-on-write: they never modify their input and always
// return a fresh top-level value. When an update helper finds no list to work
// on it returns its input unchanged, which callers use to signal "not found".
// Nothing in this package performs I/O, logs, or panics.
package projectdata
