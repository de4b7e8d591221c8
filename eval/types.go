// Package eval implements the Copilot answer evaluation pipeline
package eval

// Rubric metric names, in output column order.
const (
	MetricFaithfulness = "faithfulness"
	MetricFactualness  = "factualness"
	MetricClarity      = "clarity"
	MetricRelevance    = "relevance"
	MetricConciseness  = "conciseness"
	MetricOverall      = "overall"
)

// Metrics lists the six rubric dimensions every judged row must carry.
var Metrics = []string{
	MetricFaithfulness,
	MetricFactualness,
	MetricClarity,
	MetricRelevance,
	MetricConciseness,
	MetricOverall,
}

// ClarificationSentinel is the fixed string the chat backend returns when
// it asks for disambiguation instead of answering. Rows carrying it are
// excluded from every output table.
const ClarificationSentinel = "To clarify, did you mean:"

// FallbackReason fills the reason columns of a row whose judge output
// never parsed.
const FallbackReason = "judge output unparseable"

// MetricScore is one judge rating with its one-sentence justification.
type MetricScore struct {
	Rating int    `json:"rating"`
	Reason string `json:"reason"`
}

// InputRow is one line of the testing set.
type InputRow struct {
	Question        string
	ReferenceAnswer string
}

// Row is one fully evaluated question. Scores always contains all six
// metric keys, degraded to zero ratings when judging failed twice.
type Row struct {
	Question        string
	CopilotAnswer   string
	ReferenceAnswer string
	ResponseTime    float64
	Scores          map[string]MetricScore
}

// AnswerRow is one question answered without judging (batch path).
type AnswerRow struct {
	Question        string
	CopilotAnswer   string
	ReferenceAnswer string
	ResponseTime    float64
}

// FallbackScores returns the degraded all-zero record used when the judge
// output could not be parsed after a retry.
func FallbackScores() map[string]MetricScore {
	scores := make(map[string]MetricScore, len(Metrics))
	for _, m := range Metrics {
		scores[m] = MetricScore{Rating: 0, Reason: FallbackReason}
	}
	return scores
}
