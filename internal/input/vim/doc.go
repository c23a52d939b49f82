// Package vim implements the modal command language: character
// classification, motions and text objects as pure range queries over a
// buffer, an incremental parser that turns pending keystrokes into
// commands, and an executor that applies commands to a buffer and a set
// of registers.
//
// Parsing never mutates anything; execution validates before it mutates,
// so a failed command leaves the buffer untouched.
package vim
