package vim

import (
	"strings"

	"github.com/andrew-pa/pk/internal/engine/buffer"
	"github.com/andrew-pa/pk/internal/engine/piece"
)

// Registers holds yanked and deleted text by register name. The map is
// owned by the caller and shared across buffers.
type Registers map[rune]string

// Indenter supplies language- and configuration-aware indentation. The
// executor never hardcodes tab policy; an application plugs its own in.
// A nil Indenter disables auto-indent and makes the indent operators
// no-ops.
type Indenter interface {
	// SenseIndentLevel reports the indent level of the line containing at.
	SenseIndentLevel(b *buffer.Buffer, at piece.Index) int
	// Indent adjusts the line starting at `at` by the given number of
	// levels (negative to outdent), returning the signed rune delta.
	Indent(b *buffer.Buffer, at piece.Index, levels int) (piece.Index, error)
}

// Result reports what a command execution asks of the surrounding
// application.
type Result struct {
	// Mode is the requested mode transition, or ModeNone.
	Mode ModeTag
	// Unhandled marks commands the core does not interpret (leader keys,
	// viewport scrolling); the application dispatches them itself.
	Unhandled bool
}

// Executor applies parsed commands to a buffer. It carries the small
// amount of state the command language needs between keystrokes: the
// last repeatable command and the last character find.
type Executor struct {
	Indenter Indenter

	last     *Command
	lastFind *TextObject
}

// Execute runs one command against the buffer and registers. Validation
// happens before mutation: when an error is returned the buffer is
// unchanged.
func (e *Executor) Execute(cmd Command, b *buffer.Buffer, regs Registers) (Result, error) {
	switch cmd.Kind {
	case CmdMove:
		mo := e.resolveMotion(cmd.Motion)
		r := mo.Range(b, b.CursorIndex, 0)
		if mo.Mod != ModNone && r.End < r.Start {
			// The object selected nothing; stay put.
			return Result{}, nil
		}
		b.CursorIndex = clamp(r.End, 0, b.Text.Len())
		e.rememberFind(mo)
		return Result{}, nil

	case CmdEdit:
		return e.executeEdit(cmd, b, regs)

	case CmdPut:
		return e.executePut(cmd, b, regs)

	case CmdUndo:
		for i := 0; i < cmd.count(); i++ {
			if !b.Text.Undo() {
				break
			}
		}
		b.CursorIndex = clamp(b.CursorIndex, 0, b.Text.Len())
		return Result{}, nil

	case CmdRedo:
		for i := 0; i < cmd.count(); i++ {
			if !b.Text.Redo() {
				break
			}
		}
		b.CursorIndex = clamp(b.CursorIndex, 0, b.Text.Len())
		return Result{}, nil

	case CmdJoinLine:
		for i := 0; i < cmd.count(); i++ {
			nl, ok := b.Text.IndexOf('\n', b.CursorIndex)
			if !ok {
				break
			}
			if err := b.Text.DeleteRange(nl, nl+1); err != nil {
				return Result{}, err
			}
			b.CursorIndex = nl
		}
		e.remember(cmd)
		return Result{}, nil

	case CmdRepeat:
		return e.executeRepeat(cmd, b, regs)

	case CmdChangeMode:
		if cmd.Mode == ModeInsert {
			e.remember(cmd)
		}
		return Result{Mode: cmd.Mode}, nil

	case CmdLeader, CmdViewport:
		return Result{Unhandled: true}, nil
	}
	return Result{}, &InvalidCommandError{Reason: "unrecognized command kind"}
}

// executeEdit dispatches on the operator.
func (e *Executor) executeEdit(cmd Command, b *buffer.Buffer, regs Registers) (Result, error) {
	switch cmd.Op.Kind {
	case OpDelete, OpChange, OpYank:
		return e.operateRange(cmd, b, regs)

	case OpIndent:
		return e.indentLines(cmd, b)

	case OpMoveAndEnterMode:
		mo := e.resolveMotion(cmd.Motion)
		r := mo.Range(b, b.CursorIndex, cmd.OpCount)
		b.CursorIndex = clamp(r.End, 0, b.Text.Len())
		e.rememberFind(mo)
		e.remember(cmd)
		return Result{Mode: cmd.Op.Mode}, nil

	case OpNewLineAndEnterMode:
		var at, line piece.Index
		if cmd.Op.Dir == Forward {
			// The newline goes where the current line ends; the fresh
			// empty line starts right after it.
			if nl, ok := b.Text.IndexOf('\n', b.CursorIndex); ok {
				at = nl
			} else {
				at = b.Text.Len()
			}
			line = at + 1
		} else {
			at = b.CurrentStartOfLine(b.CursorIndex)
			line = at
		}
		level := 0
		if e.Indenter != nil {
			level = e.Indenter.SenseIndentLevel(b, b.CursorIndex)
		}
		if err := b.Text.InsertRange("\n", at); err != nil {
			return Result{}, err
		}
		if e.Indenter != nil && level > 0 {
			n, err := e.Indenter.Indent(b, line, level)
			if err != nil {
				return Result{}, err
			}
			line += n
		}
		b.CursorIndex = line
		e.remember(cmd)
		return Result{Mode: cmd.Op.Mode}, nil

	case OpReplaceChar:
		if _, ok := b.Text.CharAt(b.CursorIndex); !ok {
			return Result{}, nil
		}
		if err := b.Text.DeleteRange(b.CursorIndex, b.CursorIndex+1); err != nil {
			return Result{}, err
		}
		m, err := b.Text.InsertMutator(b.CursorIndex)
		if err != nil {
			return Result{}, err
		}
		m.PushChar(cmd.Op.Char)
		m.Commit()
		e.remember(cmd)
		return Result{}, nil
	}
	return Result{}, &InvalidCommandError{Reason: "unrecognized operator"}
}

// operateRange computes the operated range and applies delete, change or
// yank to it.
func (e *Executor) operateRange(cmd Command, b *buffer.Buffer, regs Registers) (Result, error) {
	mo := e.resolveMotion(cmd.Motion)
	r := mo.Range(b, b.CursorIndex, cmd.OpCount)
	if mo.Object.Inclusive() || mo.Mod != ModNone {
		r.End++
	}
	r = r.Normalized()
	r.Start = clamp(r.Start, 0, b.Text.Len())
	r.End = clamp(r.End, 0, b.Text.Len())

	if cmd.Op.Kind == OpChange {
		// Changing up to a trailing blank run would leave the cursor in
		// whitespace; keep the run.
		if c, ok := b.Text.CharAt(r.Start); ok && !isBlank(c) {
			for r.End > r.Start {
				c, ok := b.Text.CharAt(r.End - 1)
				if !ok || !isBlank(c) {
					break
				}
				r.End--
			}
		}
	}
	e.rememberFind(mo)
	e.remember(cmd)
	if r.IsEmpty() {
		if cmd.Op.Kind == OpChange {
			return Result{Mode: cmd.Op.Mode}, nil
		}
		return Result{}, nil
	}

	text, err := b.Text.CopyRange(r.Start, r.End)
	if err != nil {
		return Result{}, err
	}
	regs[cmd.TargetRegister()] = text

	if cmd.Op.Kind == OpYank {
		return Result{}, nil
	}
	if err := b.Text.DeleteRange(r.Start, r.End); err != nil {
		return Result{}, err
	}
	b.CursorIndex = clamp(r.Start, 0, b.Text.Len())
	if cmd.Op.Kind == OpChange {
		return Result{Mode: cmd.Op.Mode}, nil
	}
	return Result{}, nil
}

// indentLines shifts every line the motion range touches.
func (e *Executor) indentLines(cmd Command, b *buffer.Buffer) (Result, error) {
	e.remember(cmd)
	if e.Indenter == nil {
		return Result{}, nil
	}
	mo := e.resolveMotion(cmd.Motion)
	r := mo.Range(b, b.CursorIndex, cmd.OpCount).Normalized()
	levels := 1
	if cmd.Op.Dir == Backward {
		levels = -1
	}
	end := r.End
	if mo.Object.Kind == ObjWholeLine && end > r.Start {
		// A whole-line span ends just past its trailing newline; the
		// line starting there is not part of it.
		end--
	}
	ln := b.CurrentStartOfLine(r.Start)
	for ln < b.Text.Len() && ln <= end {
		n, err := e.Indenter.Indent(b, ln, levels)
		if err != nil {
			return Result{}, err
		}
		end += n
		next := b.NextLineIndex(ln)
		if next <= ln {
			break
		}
		ln = next
	}
	b.CursorIndex = clamp(b.CursorIndex, 0, b.Text.Len())
	return Result{}, nil
}

// executePut inserts register contents at the cursor, or on a fresh line
// when the register holds whole lines.
func (e *Executor) executePut(cmd Command, b *buffer.Buffer, regs Registers) (Result, error) {
	name := cmd.TargetRegister()
	src, ok := regs[name]
	if !ok || src == "" {
		return Result{}, &EmptyRegisterError{Register: name}
	}
	at := b.CursorIndex
	// Register content ending in a newline came from a line-wise
	// operation; it goes below the current line rather than mid-line.
	if strings.HasSuffix(src, "\n") {
		at = b.NextLineIndex(b.CursorIndex)
	}
	total := 0
	for i := 0; i < cmd.count(); i++ {
		if err := b.Text.InsertRange(src, at+total); err != nil {
			return Result{}, err
		}
		total += len([]rune(src))
	}
	b.CursorIndex = at + total - 1
	if cmd.ClearRegister {
		delete(regs, name)
	}
	e.remember(cmd)
	return Result{}, nil
}

// executeRepeat replays the last repeatable command, or re-inserts the
// text of the last insert session when that is what happened last.
func (e *Executor) executeRepeat(cmd Command, b *buffer.Buffer, regs Registers) (Result, error) {
	if e.last == nil {
		return Result{}, &InvalidCommandError{Reason: "nothing to repeat"}
	}
	prev := *e.last
	if entersInsert(prev) {
		p, ok := lastInsertedPiece(b.Text)
		if !ok {
			return Result{}, &InvalidCommandError{Reason: "no insertion to repeat"}
		}
		for i := 0; i < cmd.count(); i++ {
			if err := b.Text.InsertPiece(p, b.CursorIndex); err != nil {
				return Result{}, err
			}
			b.CursorIndex += p.Length
		}
		return Result{}, nil
	}
	if cmd.Count > 0 {
		prev.Count = cmd.Count
		if prev.Kind == CmdEdit {
			prev.OpCount = cmd.Count
		}
	}
	return e.Execute(prev, b, regs)
}

// entersInsert reports whether the command put the editor into insert
// mode, making the following typed text what "." repeats.
func entersInsert(c Command) bool {
	if c.Kind == CmdChangeMode && c.Mode == ModeInsert {
		return true
	}
	if c.Kind != CmdEdit {
		return false
	}
	switch c.Op.Kind {
	case OpChange:
		return true
	case OpMoveAndEnterMode, OpNewLineAndEnterMode:
		return c.Op.Mode == ModeInsert
	default:
		return false
	}
}

// lastInsertedPiece finds the piece the most recent action inserted from
// a fresh source: the text of the last typing session or paste.
func lastInsertedPiece(t *piece.Table) (piece.Piece, bool) {
	act, ok := t.LastAction()
	if !ok {
		return piece.Piece{}, false
	}
	for _, c := range act.Changes {
		if c.Kind != piece.ChangeInsert && c.Kind != piece.ChangeModify {
			continue
		}
		if _, fresh := act.Sources[c.New.Source]; fresh && c.New.Length > 0 {
			return c.New, true
		}
	}
	return piece.Piece{}, false
}

// resolveMotion substitutes the remembered character find into a
// RepeatNextChar motion.
func (e *Executor) resolveMotion(mo Motion) Motion {
	if mo.Object.Kind != ObjRepeatNextChar || e.lastFind == nil {
		return mo
	}
	obj := *e.lastFind
	if mo.Object.Opposite {
		obj.Dir = obj.Dir.Reversed()
	}
	mo.Object = obj
	return mo
}

// rememberFind records a character find so ";" and "," can replay it.
func (e *Executor) rememberFind(mo Motion) {
	if mo.Object.Kind == ObjNextChar {
		obj := mo.Object
		e.lastFind = &obj
	}
}

// remember records a repeatable command for ".".
func (e *Executor) remember(cmd Command) {
	c := cmd
	e.last = &c
}

func clamp(v, lo, hi piece.Index) piece.Index {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
