package vim

// scanner is a peekable cursor over pending keystrokes.
type scanner struct {
	rs  []rune
	pos int
}

func (s *scanner) peek() (rune, bool) {
	if s.pos >= len(s.rs) {
		return 0, false
	}
	return s.rs[s.pos], true
}

func (s *scanner) next() (rune, bool) {
	r, ok := s.peek()
	if ok {
		s.pos++
	}
	return r, ok
}

// takeNumber consumes a run of decimal digits.
func (s *scanner) takeNumber() (int, bool) {
	n, found := 0, false
	for {
		r, ok := s.peek()
		if !ok || r < '0' || r > '9' {
			return n, found
		}
		s.next()
		n = n*10 + int(r-'0')
		found = true
	}
}

// Parse interprets pending keystrokes as a normal-mode command. It never
// mutates anything. ErrIncompleteCommand means the input is a valid
// prefix and the caller should keep it and wait for more; an
// UnknownCommandError or InvalidCommandError means the input can never
// become a command and should be discarded.
func Parse(pending string) (Command, error) {
	rs := []rune(pending)
	if len(rs) == 0 {
		return Command{}, &InvalidCommandError{Reason: "empty input"}
	}
	s := &scanner{rs: rs}

	// Single-key commands that cannot take a count.
	switch rs[0] {
	case 'i':
		return Command{Kind: CmdChangeMode, Mode: ModeInsert}, nil
	case 'I':
		return Command{
			Kind:   CmdEdit,
			Op:     Operator{Kind: OpMoveAndEnterMode, Mode: ModeInsert},
			Motion: Motion{Object: TextObject{Kind: ObjStartOfLine}},
		}, nil
	case 'a':
		return Command{
			Kind:   CmdEdit,
			Op:     Operator{Kind: OpMoveAndEnterMode, Mode: ModeInsert},
			Motion: Motion{Count: 1, Object: TextObject{Kind: ObjChar, Dir: Forward}},
		}, nil
	case 'A':
		return Command{
			Kind:   CmdEdit,
			Op:     Operator{Kind: OpMoveAndEnterMode, Mode: ModeInsert},
			Motion: Motion{Object: TextObject{Kind: ObjEndOfLine}},
		}, nil
	case 'o':
		return Command{
			Kind: CmdEdit,
			Op:   Operator{Kind: OpNewLineAndEnterMode, Dir: Forward, Mode: ModeInsert},
		}, nil
	case 'O':
		return Command{
			Kind: CmdEdit,
			Op:   Operator{Kind: OpNewLineAndEnterMode, Dir: Backward, Mode: ModeInsert},
		}, nil
	case 'v':
		return Command{Kind: CmdChangeMode, Mode: ModeVisual}, nil
	case ':':
		return Command{Kind: CmdChangeMode, Mode: ModeCommand}, nil
	case '/':
		return Command{Kind: CmdChangeMode, Mode: ModeSearchForward}, nil
	case '?':
		return Command{Kind: CmdChangeMode, Mode: ModeSearchBackward}, nil
	case 'r':
		if len(rs) < 2 {
			return Command{}, ErrIncompleteCommand
		}
		return Command{
			Kind: CmdEdit,
			Op:   Operator{Kind: OpReplaceChar, Char: rs[1]},
		}, nil
	}

	var reg rune
	if r, _ := s.peek(); r == '"' {
		s.next()
		named, ok := s.next()
		if !ok {
			return Command{}, ErrIncompleteCommand
		}
		reg = named
	}

	count, _ := s.takeNumber()
	c, ok := s.peek()
	if !ok {
		return Command{}, ErrIncompleteCommand
	}
	switch c {
	case '.':
		return Command{Kind: CmdRepeat, Count: count}, nil
	case 'u':
		return Command{Kind: CmdUndo, Count: count}, nil
	case 'U':
		return Command{Kind: CmdRedo, Count: count}, nil
	case 'J':
		return Command{Kind: CmdJoinLine, Count: count}, nil
	case 'x':
		return Command{
			Kind:     CmdEdit,
			Op:       Operator{Kind: OpDelete},
			OpCount:  count,
			Motion:   Motion{Count: 1, Object: TextObject{Kind: ObjChar, Dir: Forward}},
			Register: reg,
		}, nil
	case 'p':
		return Command{Kind: CmdPut, Count: count, Register: reg}, nil
	case 'P':
		return Command{Kind: CmdPut, Count: count, Register: reg, ClearRegister: true}, nil
	case ' ':
		s.next()
		key, ok := s.next()
		if !ok {
			return Command{}, ErrIncompleteCommand
		}
		return Command{Kind: CmdLeader, Leader: key}, nil
	case 'z':
		s.next()
		return parseViewport(s, pending, count)
	case 'd', 'c', 'y', '<', '>':
		s.next()
		op := Operator{}
		switch c {
		case 'd':
			op = Operator{Kind: OpDelete}
		case 'c':
			op = Operator{Kind: OpChange, Mode: ModeInsert}
		case 'y':
			op = Operator{Kind: OpYank}
		case '<':
			op = Operator{Kind: OpIndent, Dir: Backward}
		case '>':
			op = Operator{Kind: OpIndent, Dir: Forward}
		}
		mo, err := parseMotion(s, c, pending)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdEdit, Op: op, OpCount: count, Motion: mo, Register: reg}, nil
	}

	mo, err := parseMotion(s, 0, pending)
	if err != nil {
		return Command{}, err
	}
	// A leading count on a bare move multiplies the motion count.
	if count > 0 {
		mc := mo.Count
		if mc <= 0 {
			mc = 1
		}
		mo.Count = count * mc
	}
	return Command{Kind: CmdMove, Motion: mo}, nil
}

// parseViewport handles the z-prefixed scroll commands.
func parseViewport(s *scanner, pending string, count int) (Command, error) {
	key, ok := s.next()
	if !ok {
		return Command{}, ErrIncompleteCommand
	}
	switch key {
	case 'z':
		return Command{Kind: CmdViewport, Viewport: Viewport{Kind: ViewCenterCursor}}, nil
	case 'j':
		return Command{Kind: CmdViewport, Viewport: Viewport{Kind: ViewScrollLine, Dir: Forward, Count: count}}, nil
	case 'k':
		return Command{Kind: CmdViewport, Viewport: Viewport{Kind: ViewScrollLine, Dir: Backward, Count: count}}, nil
	default:
		return Command{}, &UnknownCommandError{Raw: pending}
	}
}

// parseMotion interprets the tail of a command as a motion. opChar is the
// operator key that preceded it, so a doubled operator ("dd") can select
// the whole line.
func parseMotion(s *scanner, opChar rune, pending string) (Motion, error) {
	count, _ := s.takeNumber()
	mo := Motion{Count: count}

	c, ok := s.peek()
	if !ok {
		return Motion{}, ErrIncompleteCommand
	}
	if c == 'i' || c == 'a' {
		s.next()
		if c == 'i' {
			mo.Mod = ModInner
		} else {
			mo.Mod = ModAn
		}
		obj, ok := s.next()
		if !ok {
			return Motion{}, ErrIncompleteCommand
		}
		switch obj {
		case 'w':
			mo.Object = TextObject{Kind: ObjWord, Dir: Forward}
		case 'W':
			mo.Object = TextObject{Kind: ObjBigWord, Dir: Forward}
		case 'p':
			mo.Object = TextObject{Kind: ObjParagraph, Dir: Forward}
		case '(', ')', 'b':
			mo.Object = TextObject{Kind: ObjBlock, Char: '('}
		case '{', '}', 'B':
			mo.Object = TextObject{Kind: ObjBlock, Char: '{'}
		case '[', ']':
			mo.Object = TextObject{Kind: ObjBlock, Char: '['}
		case '<', '>':
			mo.Object = TextObject{Kind: ObjBlock, Char: '<'}
		case '"', '\'', '`':
			mo.Object = TextObject{Kind: ObjBlock, Char: obj}
		default:
			return Motion{}, &UnknownCommandError{Raw: pending}
		}
		return mo, nil
	}

	s.next()
	switch c {
	case 'h':
		mo.Object = TextObject{Kind: ObjChar, Dir: Backward}
	case 'l':
		mo.Object = TextObject{Kind: ObjChar, Dir: Forward}
	case 'j':
		mo.Object = TextObject{Kind: ObjLine, Dir: Forward}
	case 'k':
		mo.Object = TextObject{Kind: ObjLine, Dir: Backward}
	case 'w':
		mo.Object = TextObject{Kind: ObjWord, Dir: Forward}
	case 'b':
		mo.Object = TextObject{Kind: ObjWord, Dir: Backward}
	case 'W':
		mo.Object = TextObject{Kind: ObjBigWord, Dir: Forward}
	case 'B':
		mo.Object = TextObject{Kind: ObjBigWord, Dir: Backward}
	case 'e':
		mo.Object = TextObject{Kind: ObjEndOfWord, Dir: Forward}
	case 'E':
		mo.Object = TextObject{Kind: ObjEndOfBigWord, Dir: Forward}
	case 'g':
		sub, ok := s.next()
		if !ok {
			return Motion{}, ErrIncompleteCommand
		}
		switch sub {
		case 'e':
			mo.Object = TextObject{Kind: ObjEndOfWord, Dir: Backward}
		case 'E':
			mo.Object = TextObject{Kind: ObjEndOfBigWord, Dir: Backward}
		default:
			return Motion{}, &UnknownCommandError{Raw: pending}
		}
	case 'f', 'F', 't', 'T':
		target, ok := s.next()
		if !ok {
			return Motion{}, ErrIncompleteCommand
		}
		dir := Forward
		if c == 'F' || c == 'T' {
			dir = Backward
		}
		mo.Object = TextObject{
			Kind:        ObjNextChar,
			Dir:         dir,
			Char:        target,
			PlaceBefore: c == 't' || c == 'T',
		}
	case ';':
		mo.Object = TextObject{Kind: ObjRepeatNextChar}
	case ',':
		mo.Object = TextObject{Kind: ObjRepeatNextChar, Opposite: true}
	case '^':
		mo.Object = TextObject{Kind: ObjStartOfLine}
	case '$':
		mo.Object = TextObject{Kind: ObjEndOfLine}
	case '_':
		mo.Object = TextObject{Kind: ObjWholeLine}
	case '{':
		mo.Object = TextObject{Kind: ObjParagraph, Dir: Backward}
	case '}':
		mo.Object = TextObject{Kind: ObjParagraph, Dir: Forward}
	default:
		if opChar != 0 && c == opChar {
			// A doubled operator operates on the whole line.
			mo.Object = TextObject{Kind: ObjWholeLine}
			return mo, nil
		}
		return Motion{}, &UnknownCommandError{Raw: pending}
	}
	return mo, nil
}
