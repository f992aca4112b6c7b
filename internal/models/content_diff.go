package models

import (
	"fmt"
	"strings"
)

// DiffOperation defines the type of change.
type DiffOperation int

const (
	// DiffDelete indicates a segment present only in the resident text.
	DiffDelete DiffOperation = -1
	// DiffEqual indicates an unchanged segment.
	DiffEqual DiffOperation = 0
	// DiffInsert indicates a segment present only in the attending text.
	DiffInsert DiffOperation = 1
	// DiffReplace indicates a resident segment rewritten into an attending segment.
	DiffReplace DiffOperation = 2
)

// String returns the lowercase name of the operation.
func (op DiffOperation) String() string {
	switch op {
	case DiffDelete:
		return "delete"
	case DiffEqual:
		return "equal"
	case DiffInsert:
		return "insert"
	case DiffReplace:
		return "replace"
	default:
		return fmt.Sprintf("DiffOperation(%d)", int(op))
	}
}

// MarshalText encodes the operation by name so JSON reports stay readable.
func (op DiffOperation) MarshalText() ([]byte, error) {
	switch op {
	case DiffDelete, DiffEqual, DiffInsert, DiffReplace:
		return []byte(op.String()), nil
	default:
		return nil, fmt.Errorf("unknown diff operation %d", int(op))
	}
}

// UnmarshalText decodes an operation name.
func (op *DiffOperation) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "delete":
		*op = DiffDelete
	case "equal":
		*op = DiffEqual
	case "insert":
		*op = DiffInsert
	case "replace":
		*op = DiffReplace
	default:
		return fmt.Errorf("unknown diff operation %q", string(text))
	}
	return nil
}

// WordSpan is a run of whitespace-separated words inside a Replace block.
// Kind is one of DiffEqual, DiffDelete or DiffInsert.
type WordSpan struct {
	Text string        `json:"text"`
	Kind DiffOperation `json:"kind"`
}

// DiffBlock is the renderable unit of a diff. Replace blocks carry WordSpans
// instead of Text. In side-by-side views a Placeholder block stands in for
// content that exists only on the other side.
type DiffBlock struct {
	Kind        DiffOperation `json:"kind"`
	Text        string        `json:"text,omitempty"`
	Spans       []WordSpan    `json:"word_spans,omitempty"`
	Placeholder bool          `json:"placeholder,omitempty"`
}

// ResidentText returns the part of the block that belongs to the resident
// (earlier) revision.
func (b DiffBlock) ResidentText() string {
	switch b.Kind {
	case DiffEqual, DiffDelete:
		return b.Text
	case DiffReplace:
		return joinSpans(b.Spans, DiffDelete)
	default:
		return ""
	}
}

// AttendingText returns the part of the block that belongs to the attending
// (later) revision.
func (b DiffBlock) AttendingText() string {
	switch b.Kind {
	case DiffEqual, DiffInsert:
		return b.Text
	case DiffReplace:
		return joinSpans(b.Spans, DiffInsert)
	default:
		return ""
	}
}

func joinSpans(spans []WordSpan, side DiffOperation) string {
	parts := make([]string, 0, len(spans))
	for _, span := range spans {
		if span.Kind == DiffEqual || span.Kind == side {
			parts = append(parts, span.Text)
		}
	}
	return strings.Join(parts, " ")
}

// SideBySide holds two index-aligned block lists: Left[i] and Right[i] always
// describe the same logical change.
type SideBySide struct {
	Left  []DiffBlock `json:"left"`
	Right []DiffBlock `json:"right"`
}

// DiffStats counts unified blocks by kind.
type DiffStats struct {
	EqualBlocks   int `json:"equal_blocks"`
	InsertBlocks  int `json:"insert_blocks"`
	DeleteBlocks  int `json:"delete_blocks"`
	ReplaceBlocks int `json:"replace_blocks"`
	AlignedPairs  int `json:"aligned_pairs"`
}

// DiffResult holds the structured result of comparing a resident report with
// an attending report.
type DiffResult struct {
	ChangePercentage float64     `json:"change_percentage"`
	IsIdentical      bool        `json:"is_identical"`
	Granularity      string      `json:"granularity"`
	Unified          []DiffBlock `json:"unified"`
	SideBySide       SideBySide  `json:"side_by_side"`
	Stats            DiffStats   `json:"stats"`
}

// GroupedUnified reorders unified blocks for presentation: every deletion,
// then every insertion, then every replacement. Equal blocks are dropped.
// The engine output itself is always in document order.
func GroupedUnified(blocks []DiffBlock) []DiffBlock {
	grouped := make([]DiffBlock, 0, len(blocks))
	for _, kind := range []DiffOperation{DiffDelete, DiffInsert, DiffReplace} {
		for _, block := range blocks {
			if block.Kind == kind {
				grouped = append(grouped, block)
			}
		}
	}
	return grouped
}
