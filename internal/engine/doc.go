// Package engine is the facade over the editing core: a piece-table
// buffer, the modal command interpreter, and registers, combined into a
// single Editor fed one keystroke at a time.
//
// The engine is the part of the editor that owns text and commands.
// Rendering, file I/O, configuration and transport live outside it and
// talk to it through this package.
//
// # Basic Usage
//
//	ed := engine.New(engine.WithContent("hello world"))
//	ed.Feed('d')
//	ed.Feed('w')
//	text := ed.Text() // "world"
//
// Typing goes through insert mode and undoes as one unit:
//
//	ed.Feed('i')
//	ed.Type("hi ")
//	ed.Feed(engine.KeyEscape)
//	ed.Undo()
//
// An Editor is single-owner. Nothing in the engine locks; callers that
// share one across goroutines serialize access themselves.
package engine
