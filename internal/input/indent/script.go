package indent

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/andrew-pa/pk/internal/engine/buffer"
	"github.com/andrew-pa/pk/internal/engine/piece"
)

// ErrNotIndentRule is returned when a script does not define the
// indentation entry point.
var ErrNotIndentRule = errors.New("script does not define level(line)")

// Script is an indentation policy written in Lua. The script defines a
// global function level(line) returning the indent level of a line's
// text, and may set a global string `unit` naming the text of one level
// (a single tab when unset).
//
// A Script wraps one Lua state and is not safe for concurrent use, which
// matches the single-owner discipline of the rest of the engine.
type Script struct {
	state *lua.LState
	level lua.LValue
	unit  string
}

// LoadScript compiles and runs a Lua rule script. Only the base, table,
// string and math libraries are opened; rules have no reason to touch
// files or the system.
func LoadScript(code string) (*Script, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	if err := L.DoString(code); err != nil {
		L.Close()
		return nil, fmt.Errorf("indent rule: %w", err)
	}
	level := L.GetGlobal("level")
	if level.Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNotIndentRule
	}
	unit := "\t"
	if u, ok := L.GetGlobal("unit").(lua.LString); ok {
		unit = string(u)
	}
	return &Script{state: L, level: level, unit: unit}, nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}

// Unit returns the text of one indent level.
func (s *Script) Unit() string {
	return s.unit
}

// SenseIndentLevel asks the rule for the level of the line containing
// at. A rule error reads as level zero; sensing must not fail an edit.
func (s *Script) SenseIndentLevel(b *buffer.Buffer, at piece.Index) int {
	line := lineText(b, at)
	err := s.state.CallByParam(lua.P{
		Fn:      s.level,
		NRet:    1,
		Protect: true,
	}, lua.LString(line))
	if err != nil {
		return 0
	}
	ret := s.state.Get(-1)
	s.state.Pop(1)
	return int(lua.LVAsNumber(ret))
}

// Indent shifts the line starting at `at` by the given number of levels
// of the rule's unit.
func (s *Script) Indent(b *buffer.Buffer, at piece.Index, levels int) (piece.Index, error) {
	return shift(b, at, levels, s.unit)
}
