package eval

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports a judge response that is not valid JSON after fence
// stripping.
type ParseError struct {
	Err error
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("judge response is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError reports valid JSON of the wrong shape: a missing metric key
// or a rating outside the 0-10 scale.
type ShapeError struct {
	Metric string
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("judge response has wrong shape: metric %q %s", e.Metric, e.Detail)
}

// StripCodeFence removes a wrapping Markdown code fence, including the
// optional "json" language tag, from the judge's raw output. Bare JSON
// passes through unchanged.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseRubric decodes the judge's semi-structured output into the
// six-metric score map. All six metric keys must be present with ratings
// in [0,10].
func ParseRubric(raw string) (map[string]MetricScore, error) {
	cleaned := StripCodeFence(raw)

	var scores map[string]MetricScore
	if err := json.Unmarshal([]byte(cleaned), &scores); err != nil {
		return nil, &ParseError{Err: err, Raw: raw}
	}

	for _, m := range Metrics {
		score, ok := scores[m]
		if !ok {
			return nil, &ShapeError{Metric: m, Detail: "is missing"}
		}
		if score.Rating < 0 || score.Rating > 10 {
			return nil, &ShapeError{Metric: m, Detail: fmt.Sprintf("has rating %d outside 0-10", score.Rating)}
		}
	}
	return scores, nil
}
