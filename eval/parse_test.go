package eval

import (
	"errors"
	"strings"
	"testing"
)

const wellFormedRubric = `{
    "faithfulness": {"rating": 8, "reason": "Accurate."},
    "factualness": {"rating": 7, "reason": "Mostly accurate."},
    "clarity": {"rating": 9, "reason": "Clear."},
    "relevance": {"rating": 6, "reason": "Some tangents."},
    "conciseness": {"rating": 8, "reason": "Concise."},
    "overall": {"rating": 9, "reason": "Great answer."}
}`

func TestParseRubricFencedAndBareAreIdentical(t *testing.T) {
	variants := []struct {
		name string
		raw  string
	}{
		{"bare", wellFormedRubric},
		{"fenced", "```\n" + wellFormedRubric + "\n```"},
		{"fenced with json tag", "```json\n" + wellFormedRubric + "\n```"},
		{"fenced with surrounding whitespace", "\n\n```json\n" + wellFormedRubric + "\n```\n\n"},
	}

	want, err := ParseRubric(wellFormedRubric)
	if err != nil {
		t.Fatalf("parsing bare rubric: %v", err)
	}

	for _, tt := range variants {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRubric(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("expected %d metrics, got %d", len(want), len(got))
			}
			for m, score := range want {
				if got[m] != score {
					t.Errorf("metric %s: expected %+v, got %+v", m, score, got[m])
				}
			}
		})
	}
}

func TestParseRubricErrors(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantParse bool
		wantShape bool
	}{
		{
			name:      "not json at all",
			raw:       "I cannot evaluate this.",
			wantParse: true,
		},
		{
			name:      "truncated json",
			raw:       `{"faithfulness": {"rating": 8,`,
			wantParse: true,
		},
		{
			name:      "missing metric",
			raw:       `{"faithfulness": {"rating": 8, "reason": "ok"}}`,
			wantShape: true,
		},
		{
			name: "rating above scale",
			raw: `{
				"faithfulness": {"rating": 11, "reason": "ok"},
				"factualness": {"rating": 7, "reason": "ok"},
				"clarity": {"rating": 9, "reason": "ok"},
				"relevance": {"rating": 6, "reason": "ok"},
				"conciseness": {"rating": 8, "reason": "ok"},
				"overall": {"rating": 9, "reason": "ok"}
			}`,
			wantShape: true,
		},
		{
			name: "negative rating",
			raw: `{
				"faithfulness": {"rating": -1, "reason": "ok"},
				"factualness": {"rating": 7, "reason": "ok"},
				"clarity": {"rating": 9, "reason": "ok"},
				"relevance": {"rating": 6, "reason": "ok"},
				"conciseness": {"rating": 8, "reason": "ok"},
				"overall": {"rating": 9, "reason": "ok"}
			}`,
			wantShape: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRubric(tt.raw)
			if err == nil {
				t.Fatal("expected an error")
			}
			var parseErr *ParseError
			var shapeErr *ShapeError
			if tt.wantParse && !errors.As(err, &parseErr) {
				t.Errorf("expected ParseError, got %T: %v", err, err)
			}
			if tt.wantShape && !errors.As(err, &shapeErr) {
				t.Errorf("expected ShapeError, got %T: %v", err, err)
			}
		})
	}
}

func TestStripCodeFenceLeavesBareJSONAlone(t *testing.T) {
	if got := StripCodeFence(`{"a": 1}`); got != `{"a": 1}` {
		t.Errorf("expected bare JSON unchanged, got %q", got)
	}
}

func TestBuildRubricPromptEmbedsInputs(t *testing.T) {
	prompt := BuildRubricPrompt("What is the refund policy?", "30 days.", "Refunds within 30 days.")

	for _, want := range []string{"What is the refund policy?", "30 days.", "Refunds within 30 days."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	for _, m := range Metrics {
		if !strings.Contains(prompt, m) {
			t.Errorf("prompt missing metric %q", m)
		}
	}
}
