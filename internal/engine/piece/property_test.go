package piece

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// model applies the same edits to a plain rune slice so the table can be
// checked against it.
type model struct {
	runes []rune
}

func (m *model) insert(s string, at Index) {
	rs := []rune(s)
	out := make([]rune, 0, len(m.runes)+len(rs))
	out = append(out, m.runes[:at]...)
	out = append(out, rs...)
	out = append(out, m.runes[at:]...)
	m.runes = out
}

func (m *model) delete(start, end Index) {
	m.runes = append(m.runes[:start:start], m.runes[end:]...)
}

func TestTableMatchesModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		initial := rapid.StringN(-1, 64, -1).Draw(rt, "initial")
		tbl := WithText(initial)
		mod := &model{runes: []rune(initial)}

		steps := rapid.IntRange(0, 24).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				at := rapid.IntRange(0, tbl.Len()).Draw(rt, "at")
				text := rapid.StringN(1, 8, -1).Draw(rt, "text")
				if err := tbl.InsertRange(text, at); err != nil {
					rt.Fatalf("InsertRange(%q, %d) error = %v", text, at, err)
				}
				mod.insert(text, at)
			case 1:
				start := rapid.IntRange(0, tbl.Len()).Draw(rt, "start")
				end := rapid.IntRange(start, tbl.Len()).Draw(rt, "end")
				if err := tbl.DeleteRange(start, end); err != nil {
					rt.Fatalf("DeleteRange(%d, %d) error = %v", start, end, err)
				}
				mod.delete(start, end)
			case 2:
				at := rapid.IntRange(0, tbl.Len()).Draw(rt, "at")
				m, err := tbl.InsertMutator(at)
				if err != nil {
					rt.Fatalf("InsertMutator(%d) error = %v", at, err)
				}
				text := rapid.StringN(0, 6, -1).Draw(rt, "typed")
				for _, r := range text {
					m.PushChar(r)
				}
				m.Commit()
				mod.insert(text, at)
			}
			if got, want := tbl.Text(), string(mod.runes); got != want {
				rt.Fatalf("step %d: table %q, model %q", i, got, want)
			}
			if got, want := tbl.Len(), len(mod.runes); got != want {
				rt.Fatalf("step %d: Len() = %d, model %d", i, got, want)
			}
		}
	})
}

func TestUndoAllRestoresOriginal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		initial := rapid.StringN(-1, 32, -1).Draw(rt, "initial")
		tbl := WithText(initial)

		steps := rapid.IntRange(1, 16).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "insert") || tbl.Len() == 0 {
				at := rapid.IntRange(0, tbl.Len()).Draw(rt, "at")
				text := rapid.StringN(1, 6, -1).Draw(rt, "text")
				if err := tbl.InsertRange(text, at); err != nil {
					rt.Fatalf("InsertRange error = %v", err)
				}
			} else {
				start := rapid.IntRange(0, tbl.Len()-1).Draw(rt, "start")
				end := rapid.IntRange(start+1, tbl.Len()).Draw(rt, "end")
				if err := tbl.DeleteRange(start, end); err != nil {
					rt.Fatalf("DeleteRange error = %v", err)
				}
			}
		}
		for tbl.Undo() {
		}
		if got := tbl.Text(); got != initial {
			rt.Fatalf("undo-all = %q, want %q", got, initial)
		}
		for tbl.Redo() {
		}
		for tbl.Undo() {
		}
		if got := tbl.Text(); got != initial {
			rt.Fatalf("undo-redo-undo = %q, want %q", got, initial)
		}
	})
}

func TestCopyRangeMatchesSlice(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tbl := WithText(rapid.StringN(-1, 32, -1).Draw(rt, "initial"))
		edits := rapid.IntRange(0, 6).Draw(rt, "edits")
		for i := 0; i < edits; i++ {
			at := rapid.IntRange(0, tbl.Len()).Draw(rt, "at")
			if err := tbl.InsertRange(rapid.StringN(1, 6, -1).Draw(rt, "text"), at); err != nil {
				rt.Fatalf("InsertRange error = %v", err)
			}
		}
		text := []rune(tbl.Text())
		start := rapid.IntRange(0, len(text)).Draw(rt, "start")
		end := rapid.IntRange(start, len(text)).Draw(rt, "end")
		got, err := tbl.CopyRange(start, end)
		if err != nil {
			rt.Fatalf("CopyRange error = %v", err)
		}
		if want := string(text[start:end]); got != want {
			rt.Fatalf("CopyRange(%d,%d) = %q, want %q", start, end, got, want)
		}
	})
}

func TestIndexOfMatchesMaterializedSearch(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tbl := WithText(rapid.StringOfN(rapid.RuneFrom([]rune("ab \n")), -1, 32, -1).Draw(rt, "initial"))
		edits := rapid.IntRange(0, 4).Draw(rt, "edits")
		for i := 0; i < edits; i++ {
			at := rapid.IntRange(0, tbl.Len()).Draw(rt, "at")
			ins := rapid.StringOfN(rapid.RuneFrom([]rune("ab \n")), 1, 4, -1).Draw(rt, "text")
			if err := tbl.InsertRange(ins, at); err != nil {
				rt.Fatalf("InsertRange error = %v", err)
			}
		}
		text := []rune(tbl.Text())
		needle := rapid.RuneFrom([]rune("ab \n")).Draw(rt, "needle")
		start := rapid.IntRange(0, len(text)).Draw(rt, "start")

		wantIdx, wantOK := -1, false
		for i := start; i < len(text); i++ {
			if text[i] == needle {
				wantIdx, wantOK = i, true
				break
			}
		}
		got, ok := tbl.IndexOf(needle, start)
		if ok != wantOK || (ok && got != wantIdx) {
			rt.Fatalf("IndexOf(%q, %d) = %d, %v, want %d, %v", needle, start, got, ok, wantIdx, wantOK)
		}

		wantIdx, wantOK = -1, false
		for i := start - 1; i >= 0; i-- {
			if text[i] == needle {
				wantIdx, wantOK = i, true
				break
			}
		}
		got, ok = tbl.LastIndexOf(needle, start)
		if ok != wantOK || (ok && got != wantIdx) {
			rt.Fatalf("LastIndexOf(%q, %d) = %d, %v, want %d, %v", needle, start, got, ok, wantIdx, wantOK)
		}
	})
}

func TestReplicationEquivalence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		initial := rapid.StringN(-1, 24, -1).Draw(rt, "initial")
		leader := WithText(initial)
		follower := WithText(initial)

		steps := rapid.IntRange(1, 12).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			at := rapid.IntRange(0, leader.Len()).Draw(rt, "at")
			if rapid.Bool().Draw(rt, "insert") || leader.Len() == 0 {
				if err := leader.InsertRange(rapid.StringN(1, 5, -1).Draw(rt, "text"), at); err != nil {
					rt.Fatalf("InsertRange error = %v", err)
				}
			} else {
				start := rapid.IntRange(0, leader.Len()-1).Draw(rt, "start")
				end := rapid.IntRange(start+1, leader.Len()).Draw(rt, "end")
				if err := leader.DeleteRange(start, end); err != nil {
					rt.Fatalf("DeleteRange error = %v", err)
				}
			}
			// Sync at random points, not after every edit.
			if rapid.Bool().Draw(rt, "sync") {
				for _, act := range leader.ChangesSince(follower.LastActionID()) {
					if err := follower.ApplyAction(act); err != nil {
						rt.Fatalf("ApplyAction(%d) error = %v", act.ID, err)
					}
				}
			}
		}
		for _, act := range leader.ChangesSince(follower.LastActionID()) {
			if err := follower.ApplyAction(act); err != nil {
				rt.Fatalf("ApplyAction(%d) error = %v", act.ID, err)
			}
		}
		if got, want := follower.Text(), leader.Text(); got != want {
			rt.Fatalf("follower %q, leader %q", got, want)
		}
	})
}

func TestTextNeverContainsPieceSeams(t *testing.T) {
	// Splitting and splicing must never duplicate or drop runes at piece
	// boundaries; spot-check with a deterministic interleaving.
	tbl := WithText("0123456789")
	for i := 0; i < 5; i++ {
		if err := tbl.InsertRange("ab", i*4); err != nil {
			t.Fatalf("InsertRange error = %v", err)
		}
	}
	want := "ab01ab23ab45ab67ab89"
	if got := tbl.Text(); got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	if got := strings.Count(tbl.Text(), "ab"); got != 5 {
		t.Errorf("insert count = %d, want 5", got)
	}
}
