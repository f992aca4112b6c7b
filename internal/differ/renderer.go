package differ

import (
	"fmt"
	"strings"

	"github.com/aleister1102/reportdiff/internal/models"
)

type unitStatus int

const (
	statusChanged unitStatus = iota
	statusEqual
	statusPaired
)

type renderItem struct {
	kind models.DiffOperation
	a    int
	b    int
}

// DiffRenderer turns an alignment into unified and side-by-side blocks.
type DiffRenderer struct {
	aligner *SequenceAligner
}

// NewDiffRenderer creates a renderer that uses aligner for word-level spans.
func NewDiffRenderer(aligner *SequenceAligner) *DiffRenderer {
	return &DiffRenderer{aligner: aligner}
}

// Render merges equal runs and aligned pairs into unified blocks in document
// order. Units outside any equal run or pair become deletions or insertions.
// Consecutive units of the same kind share a block; every pair gets its own
// replace block.
func (r *DiffRenderer) Render(a, b []Unit, ops []Opcode, pairs []AlignedPair) []models.DiffBlock {
	aStatus, aPartner := make([]unitStatus, len(a)), make([]int, len(a))
	bStatus := make([]unitStatus, len(b))
	for _, op := range ops {
		if op.Tag != OpEqual {
			continue
		}
		for k := 0; k < op.ALen(); k++ {
			aStatus[op.A1+k], aPartner[op.A1+k] = statusEqual, op.B1+k
			bStatus[op.B1+k] = statusEqual
		}
	}
	for _, p := range pairs {
		aStatus[p.Source], aPartner[p.Source] = statusPaired, p.Target
		bStatus[p.Target] = statusPaired
	}

	items := make([]renderItem, 0, len(a)+len(b))
	emitted := make([]bool, len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		hasA, hasB := i < len(a), j < len(b)
		switch {
		case hasA && aStatus[i] == statusChanged:
			items = append(items, renderItem{kind: models.DiffDelete, a: i, b: -1})
			i++
		case hasB && bStatus[j] == statusChanged:
			items = append(items, renderItem{kind: models.DiffInsert, a: -1, b: j})
			j++
		case hasB && bStatus[j] == statusPaired && emitted[j]:
			j++
		case hasA && aStatus[i] == statusPaired:
			items = append(items, renderItem{kind: models.DiffReplace, a: i, b: aPartner[i]})
			emitted[aPartner[i]] = true
			i++
		case hasA && hasB && aStatus[i] == statusEqual && aPartner[i] == j:
			items = append(items, renderItem{kind: models.DiffEqual, a: i, b: j})
			i++
			j++
		case hasB && bStatus[j] == statusPaired:
			// emitted later together with its resident partner
			j++
		default:
			panic(fmt.Sprintf("differ: cannot merge alignment at resident %d, attending %d", i, j))
		}
	}

	return r.buildBlocks(a, b, items)
}

func (r *DiffRenderer) buildBlocks(a, b []Unit, items []renderItem) []models.DiffBlock {
	blocks := make([]models.DiffBlock, 0, len(items))
	var run []Unit
	runKind := models.DiffEqual

	flush := func() {
		if len(run) > 0 {
			blocks = append(blocks, models.DiffBlock{Kind: runKind, Text: joinUnits(run)})
			run = run[:0]
		}
	}

	for _, it := range items {
		if it.kind == models.DiffReplace {
			flush()
			blocks = append(blocks, models.DiffBlock{
				Kind:  models.DiffReplace,
				Spans: r.WordSpans(a[it.a].Text, b[it.b].Text),
			})
			continue
		}
		if it.kind != runKind {
			flush()
			runKind = it.kind
		}
		if it.kind == models.DiffInsert {
			run = append(run, b[it.b])
		} else {
			run = append(run, a[it.a])
		}
	}
	flush()
	return blocks
}

// WordSpans highlights the word-level differences between two texts.
func (r *DiffRenderer) WordSpans(resident, attending string) []models.WordSpan {
	ta, tb := strings.Fields(resident), strings.Fields(attending)
	var spans []models.WordSpan
	add := func(tokens []string, kind models.DiffOperation) {
		spans = append(spans, models.WordSpan{Text: strings.Join(tokens, " "), Kind: kind})
	}
	for _, op := range r.aligner.AlignStrings(ta, tb) {
		switch op.Tag {
		case OpEqual:
			add(ta[op.A1:op.A2], models.DiffEqual)
		case OpDelete:
			add(ta[op.A1:op.A2], models.DiffDelete)
		case OpInsert:
			add(tb[op.B1:op.B2], models.DiffInsert)
		case OpReplace:
			add(ta[op.A1:op.A2], models.DiffDelete)
			add(tb[op.B1:op.B2], models.DiffInsert)
		}
	}
	return spans
}

// SplitSides derives the side-by-side view from unified blocks. Content that
// exists on one side only is matched by an empty placeholder on the other.
func SplitSides(unified []models.DiffBlock) models.SideBySide {
	sbs := models.SideBySide{
		Left:  make([]models.DiffBlock, 0, len(unified)),
		Right: make([]models.DiffBlock, 0, len(unified)),
	}
	for _, block := range unified {
		var left, right models.DiffBlock
		switch block.Kind {
		case models.DiffEqual:
			left, right = block, block
		case models.DiffDelete:
			left = block
			right = models.DiffBlock{Kind: models.DiffDelete, Placeholder: true}
		case models.DiffInsert:
			left = models.DiffBlock{Kind: models.DiffInsert, Placeholder: true}
			right = block
		case models.DiffReplace:
			left = models.DiffBlock{Kind: models.DiffReplace, Spans: filterSpans(block.Spans, models.DiffDelete)}
			right = models.DiffBlock{Kind: models.DiffReplace, Spans: filterSpans(block.Spans, models.DiffInsert)}
		}
		sbs.Left = append(sbs.Left, left)
		sbs.Right = append(sbs.Right, right)
	}
	return sbs
}

func filterSpans(spans []models.WordSpan, side models.DiffOperation) []models.WordSpan {
	out := make([]models.WordSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind == models.DiffEqual || span.Kind == side {
			out = append(out, span)
		}
	}
	return out
}

// joinUnits joins units of one run: a space within a paragraph, a blank line
// across paragraphs.
func joinUnits(units []Unit) string {
	var b strings.Builder
	for k, u := range units {
		if k > 0 {
			if u.Paragraph == units[k-1].Paragraph {
				b.WriteByte(' ')
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(u.Text)
	}
	return b.String()
}
