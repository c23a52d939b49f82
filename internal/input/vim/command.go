package vim

// ModeTag names an editor mode. Commands consume and produce tags; the
// mode state itself belongs to the surrounding application.
type ModeTag uint8

const (
	// ModeNone means no mode transition.
	ModeNone ModeTag = iota
	// ModeNormal is command mode.
	ModeNormal
	// ModeInsert is typing mode.
	ModeInsert
	// ModeVisual is selection mode.
	ModeVisual
	// ModeCommand is the ex command line.
	ModeCommand
	// ModeSearchForward is the forward search prompt.
	ModeSearchForward
	// ModeSearchBackward is the backward search prompt.
	ModeSearchBackward
)

// String returns the string representation of the mode tag.
func (m ModeTag) String() string {
	names := [...]string{
		"none", "normal", "insert", "visual", "command",
		"search-forward", "search-backward",
	}
	if int(m) < len(names) {
		return names[m]
	}
	return "unknown"
}

// OperatorKind identifies the kind of an operator.
type OperatorKind uint8

const (
	// OpDelete removes the operated range into a register.
	OpDelete OperatorKind = iota
	// OpChange removes the range, minus trailing whitespace, and enters
	// insert mode.
	OpChange
	// OpYank copies the range into a register without mutating.
	OpYank
	// OpIndent shifts the lines the range touches by one level.
	OpIndent
	// OpMoveAndEnterMode moves over the motion and switches modes.
	OpMoveAndEnterMode
	// OpNewLineAndEnterMode opens a line above or below and switches
	// modes.
	OpNewLineAndEnterMode
	// OpReplaceChar overwrites the rune under the cursor.
	OpReplaceChar
)

// String returns the string representation of the operator kind.
func (k OperatorKind) String() string {
	names := [...]string{
		"delete", "change", "yank", "indent", "move-and-enter-mode",
		"new-line-and-enter-mode", "replace-char",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Operator is the verb of an edit command.
type Operator struct {
	Kind OperatorKind
	Dir  Direction // Indent shift direction, NewLine placement
	Mode ModeTag   // target mode for the mode-entering operators
	Char rune      // replacement rune for ReplaceChar
}

// ViewportKind identifies a viewport motion.
type ViewportKind uint8

const (
	// ViewCenterCursor scrolls the cursor line to the middle.
	ViewCenterCursor ViewportKind = iota
	// ViewScrollLine scrolls by whole lines without moving the cursor.
	ViewScrollLine
)

// Viewport is a scroll request the surrounding application carries out.
type Viewport struct {
	Kind  ViewportKind
	Dir   Direction
	Count int
}

// CommandKind identifies the kind of a Command.
type CommandKind uint8

const (
	// CmdMove moves the cursor over a motion.
	CmdMove CommandKind = iota
	// CmdEdit applies an operator over a motion.
	CmdEdit
	// CmdPut inserts register contents.
	CmdPut
	// CmdUndo reverses recorded actions.
	CmdUndo
	// CmdRedo re-applies undone actions.
	CmdRedo
	// CmdJoinLine joins the next line onto the current one.
	CmdJoinLine
	// CmdLeader is an application-defined leader keystroke.
	CmdLeader
	// CmdViewport is a scroll request.
	CmdViewport
	// CmdChangeMode switches modes without editing.
	CmdChangeMode
	// CmdRepeat replays the last repeatable command.
	CmdRepeat
)

// String returns the string representation of the command kind.
func (k CommandKind) String() string {
	names := [...]string{
		"move", "edit", "put", "undo", "redo", "join-line", "leader",
		"viewport", "change-mode", "repeat",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Command is one fully parsed normal-mode command.
type Command struct {
	Kind   CommandKind
	Motion Motion // Move, Edit
	Op     Operator
	// OpCount multiplies the motion count for Edit commands; zero means
	// one.
	OpCount int
	// Register names the register an Edit writes or a Put reads; zero
	// means the default register.
	Register rune
	// ClearRegister empties the register after a Put.
	ClearRegister bool
	// Count repeats Put, Undo, Redo, JoinLine and Repeat; zero means
	// one.
	Count    int
	Leader   rune
	Viewport Viewport
	Mode     ModeTag // ChangeMode target
}

// DefaultRegister is used when a command names no register.
const DefaultRegister = '"'

// TargetRegister returns the register the command reads or writes.
func (c Command) TargetRegister() rune {
	if c.Register == 0 {
		return DefaultRegister
	}
	return c.Register
}

// count returns the effective repetition count.
func (c Command) count() int {
	if c.Count <= 0 {
		return 1
	}
	return c.Count
}
