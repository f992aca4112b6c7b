package differ

import "fmt"

// OpTag classifies an opcode.
type OpTag int

const (
	OpEqual OpTag = iota
	OpInsert
	OpDelete
	OpReplace
)

func (t OpTag) String() string {
	switch t {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return fmt.Sprintf("OpTag(%d)", int(t))
	}
}

// Opcode maps the half-open range A1:A2 of the resident sequence onto B1:B2 of
// the attending sequence.
type Opcode struct {
	Tag OpTag
	A1  int
	A2  int
	B1  int
	B2  int
}

// ALen returns the length of the resident range.
func (o Opcode) ALen() int { return o.A2 - o.A1 }

// BLen returns the length of the attending range.
func (o Opcode) BLen() int { return o.B2 - o.B1 }

// AlignedPair links a resident unit to an attending unit by content
// similarity. Source and Target are unit indices.
type AlignedPair struct {
	Source     int
	Target     int
	Similarity float64
}

// validateOpcodes checks that ops partition [0,n) and [0,m) in order, with
// lengths that agree with each tag.
func validateOpcodes(ops []Opcode, n, m int) error {
	ai, bj := 0, 0
	for k, op := range ops {
		if op.A1 != ai || op.B1 != bj {
			return fmt.Errorf("opcode %d (%s) starts at (%d,%d), want (%d,%d)", k, op.Tag, op.A1, op.B1, ai, bj)
		}
		if op.A2 < op.A1 || op.B2 < op.B1 {
			return fmt.Errorf("opcode %d (%s) has a negative range", k, op.Tag)
		}
		la, lb := op.ALen(), op.BLen()
		var ok bool
		switch op.Tag {
		case OpEqual:
			ok = la > 0 && la == lb
		case OpInsert:
			ok = la == 0 && lb > 0
		case OpDelete:
			ok = la > 0 && lb == 0
		case OpReplace:
			ok = la > 0 && lb > 0
		}
		if !ok {
			return fmt.Errorf("opcode %d (%s) has ranges %d:%d and %d:%d", k, op.Tag, op.A1, op.A2, op.B1, op.B2)
		}
		ai, bj = op.A2, op.B2
	}
	if ai != n || bj != m {
		return fmt.Errorf("opcodes cover (%d,%d), want (%d,%d)", ai, bj, n, m)
	}
	return nil
}

// validatePairs checks that no attending unit is claimed twice and that every
// pair meets the threshold.
func validatePairs(pairs []AlignedPair, threshold float64) error {
	seenSource := make(map[int]struct{}, len(pairs))
	seenTarget := make(map[int]struct{}, len(pairs))
	for _, p := range pairs {
		if _, dup := seenSource[p.Source]; dup {
			return fmt.Errorf("resident unit %d paired twice", p.Source)
		}
		if _, dup := seenTarget[p.Target]; dup {
			return fmt.Errorf("attending unit %d paired twice", p.Target)
		}
		if p.Similarity < threshold {
			return fmt.Errorf("pair (%d,%d) scored %.4f below threshold %.2f", p.Source, p.Target, p.Similarity, threshold)
		}
		seenSource[p.Source] = struct{}{}
		seenTarget[p.Target] = struct{}{}
	}
	return nil
}
