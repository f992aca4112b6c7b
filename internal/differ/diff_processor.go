package differ

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// SequenceAligner computes a minimal edit script between two sequences of
// units. Each distinct unit text is interned to a single rune so that
// diffmatchpatch can run its Myers implementation over whole units instead of
// characters.
type SequenceAligner struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewSequenceAligner creates a new aligner. The timeout is disabled so the
// result is always the exact shortest edit script.
func NewSequenceAligner() *SequenceAligner {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &SequenceAligner{dmp: dmp}
}

// Align aligns two unit sequences by exact text equality.
func (sa *SequenceAligner) Align(a, b []Unit) []Opcode {
	return sa.AlignStrings(unitTexts(a), unitTexts(b))
}

// AlignStrings aligns two string sequences by exact equality. The returned
// opcodes partition both sequences in order. Adjacent deletions and
// insertions are reported as a single replace, except when neither side has
// an equal run and the two sides share no word at all, in which case the
// result is a delete of everything followed by an insert of everything.
func (sa *SequenceAligner) AlignStrings(a, b []string) []Opcode {
	var ops []Opcode
	switch {
	case len(a) == 0 && len(b) == 0:
		return nil
	case len(a) == 0:
		ops = []Opcode{{Tag: OpInsert, B2: len(b)}}
	case len(b) == 0:
		ops = []Opcode{{Tag: OpDelete, A2: len(a)}}
	default:
		ra, rb := encodeSequences(a, b)
		ops = opcodesFromDiffs(sa.dmp.DiffMainRunes(ra, rb, false))
		if len(ops) == 1 && ops[0].Tag == OpReplace && !shareWords(a, b) {
			ops = []Opcode{
				{Tag: OpDelete, A1: 0, A2: len(a), B1: 0, B2: 0},
				{Tag: OpInsert, A1: len(a), A2: len(a), B1: 0, B2: len(b)},
			}
		}
	}

	if err := validateOpcodes(ops, len(a), len(b)); err != nil {
		panic(fmt.Sprintf("differ: invalid alignment: %v", err))
	}
	return ops
}

// encodeSequences maps every distinct string to its own rune. Surrogate code
// points are skipped because they do not survive a string round trip.
func encodeSequences(a, b []string) ([]rune, []rune) {
	ids := make(map[string]rune, len(a)+len(b))
	next := rune(1)
	encode := func(seq []string) []rune {
		out := make([]rune, len(seq))
		for i, s := range seq {
			id, ok := ids[s]
			if !ok {
				if next >= 0xD800 && next <= 0xDFFF {
					next = 0xE000
				}
				if next > utf8.MaxRune {
					panic("differ: too many distinct units to align")
				}
				id = next
				ids[s] = id
				next++
			}
			out[i] = id
		}
		return out
	}
	return encode(a), encode(b)
}

// opcodesFromDiffs walks the rune diffs, pairing pending deletions with
// pending insertions and merging adjacent equal runs.
func opcodesFromDiffs(diffs []diffmatchpatch.Diff) []Opcode {
	var ops []Opcode
	i, j := 0, 0
	pendingDel, pendingIns := 0, 0

	flush := func() {
		switch {
		case pendingDel > 0 && pendingIns > 0:
			ops = append(ops, Opcode{Tag: OpReplace, A1: i, A2: i + pendingDel, B1: j, B2: j + pendingIns})
		case pendingDel > 0:
			ops = append(ops, Opcode{Tag: OpDelete, A1: i, A2: i + pendingDel, B1: j, B2: j})
		case pendingIns > 0:
			ops = append(ops, Opcode{Tag: OpInsert, A1: i, A2: i, B1: j, B2: j + pendingIns})
		}
		i += pendingDel
		j += pendingIns
		pendingDel, pendingIns = 0, 0
	}

	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		if n == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			pendingDel += n
		case diffmatchpatch.DiffInsert:
			pendingIns += n
		case diffmatchpatch.DiffEqual:
			flush()
			if last := len(ops) - 1; last >= 0 && ops[last].Tag == OpEqual && ops[last].A2 == i && ops[last].B2 == j {
				ops[last].A2 += n
				ops[last].B2 += n
			} else {
				ops = append(ops, Opcode{Tag: OpEqual, A1: i, A2: i + n, B1: j, B2: j + n})
			}
			i += n
			j += n
		}
	}
	flush()
	return ops
}

func shareWords(a, b []string) bool {
	words := make(map[string]struct{})
	for _, s := range a {
		for _, w := range strings.Fields(s) {
			words[w] = struct{}{}
		}
	}
	for _, s := range b {
		for _, w := range strings.Fields(s) {
			if _, ok := words[w]; ok {
				return true
			}
		}
	}
	return false
}

func unitTexts(units []Unit) []string {
	texts := make([]string, len(units))
	for i, u := range units {
		texts[i] = u.Text
	}
	return texts
}
