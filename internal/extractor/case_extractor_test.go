package extractor

import (
	"strings"
	"testing"

	"github.com/aleister1102/reportdiff/internal/config"
	"github.com/aleister1102/reportdiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(htmlMode string) *CaseExtractor {
	cfg := config.NewDefaultExtractorConfig()
	cfg.HTMLMode = htmlMode
	return NewCaseExtractor(cfg, zerolog.Nop())
}

func TestCaseExtractor_Extract(t *testing.T) {
	input := "Pasted from worklist\r\n" +
		"Case 10\r\n" +
		"Resident Report:\r\nNo pneumothorax.\r\n" +
		"Attending Report:\r\nSmall right pneumothorax.\r\n\r\n" +
		"case 2\n" +
		"resident:\n  Lungs clear.\n\n  Heart normal.\n" +
		"ATTENDING REPORT :\nLungs clear.\nHeart normal.\n" +
		"Case 3\n" +
		"Resident Report:\nNormal abdomen.\n"

	cases, skipped := newTestExtractor(HTMLModeAuto).Extract(input)

	assert.Equal(t, []models.Case{
		{Number: "2", Resident: "Lungs clear.\n\n  Heart normal.", Attending: "Lungs clear.\nHeart normal."},
		{Number: "10", Resident: "No pneumothorax.", Attending: "Small right pneumothorax."},
	}, cases)
	assert.Equal(t, []models.SkippedCase{
		{Number: "3", Reason: ReasonMissingAttending},
	}, skipped)
}

func TestCaseExtractor_SkipReasons(t *testing.T) {
	input := "Case 1\nNothing labelled here.\n" +
		"Case 2\nAttending: Only attending.\n" +
		"Case 3\nResident: Only resident.\n"

	cases, skipped := newTestExtractor(HTMLModeNever).Extract(input)

	assert.Empty(t, cases)
	assert.Equal(t, []models.SkippedCase{
		{Number: "1", Reason: ReasonMissingBoth},
		{Number: "2", Reason: ReasonMissingResident},
		{Number: "3", Reason: ReasonMissingAttending},
	}, skipped)
}

func TestCaseExtractor_RepeatedLabelOverrides(t *testing.T) {
	input := "Case 1\nResident: draft\nResident: final\nAttending: signed"

	cases, _ := newTestExtractor(HTMLModeNever).Extract(input)

	require.Len(t, cases, 1)
	assert.Equal(t, "final", cases[0].Resident)
	assert.Equal(t, "signed", cases[0].Attending)
}

func TestCaseExtractor_HeaderMustStartLine(t *testing.T) {
	input := "Case 1\nResident: See Case 2 for comparison.\nAttending: Agree."

	cases, skipped := newTestExtractor(HTMLModeNever).Extract(input)

	require.Len(t, cases, 1)
	assert.Empty(t, skipped)
	assert.Equal(t, "See Case 2 for comparison.", cases[0].Resident)
}

func TestCaseExtractor_NoCases(t *testing.T) {
	cases, skipped := newTestExtractor(HTMLModeAuto).Extract("just some text")
	assert.Empty(t, cases)
	assert.Empty(t, skipped)
}

func TestCaseExtractor_HTMLInput(t *testing.T) {
	input := `<html><body>` +
		`<p>Case 1</p>` +
		`<p>Resident Report:<br>No pneumothorax.</p>` +
		`<p>Attending Report:<br>Small right pneumothorax &amp; rib fracture.</p>` +
		`</body></html>`

	t.Run("auto detects markup", func(t *testing.T) {
		cases, skipped := newTestExtractor(HTMLModeAuto).Extract(input)
		assert.Empty(t, skipped)
		assert.Equal(t, []models.Case{
			{Number: "1", Resident: "No pneumothorax.", Attending: "Small right pneumothorax & rib fracture."},
		}, cases)
	})

	t.Run("never keeps markup", func(t *testing.T) {
		cases, skipped := newTestExtractor(HTMLModeNever).Extract(input)
		assert.Empty(t, cases)
		assert.Empty(t, skipped)
	})
}

func TestCaseExtractor_ValidateInput(t *testing.T) {
	cfg := config.NewDefaultExtractorConfig()
	cfg.MaxInputBytes = 10
	ce := NewCaseExtractor(cfg, zerolog.Nop())

	assert.NoError(t, ce.ValidateInput("short"))
	assert.Error(t, ce.ValidateInput(strings.Repeat("x", 11)))

	cfg.MaxInputBytes = 0
	assert.NoError(t, NewCaseExtractor(cfg, zerolog.Nop()).ValidateInput(strings.Repeat("x", 1<<16)))
}

func TestCompareCaseNumbers(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"7", "7", 0},
		{"007", "7", -1},
		{"99999999999999999999999", "100000000000000000000000", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CompareCaseNumbers(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
