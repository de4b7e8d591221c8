package eval

// MetricSummary aggregates one rubric dimension across a run.
type MetricSummary struct {
	Average      float64
	Distribution map[int]int // rating -> count
}

// Summarize computes per-metric aggregates over the rows that make it
// into the output table (sentinel-clarification rows are excluded, same
// as in the written CSV).
func Summarize(rows []Row) map[string]MetricSummary {
	summaries := make(map[string]MetricSummary, len(Metrics))

	for _, m := range Metrics {
		summary := MetricSummary{Distribution: make(map[int]int)}
		total, counted := 0, 0
		for _, row := range rows {
			if row.CopilotAnswer == ClarificationSentinel {
				continue
			}
			rating := row.Scores[m].Rating
			summary.Distribution[rating]++
			total += rating
			counted++
		}
		if counted > 0 {
			summary.Average = float64(total) / float64(counted)
		}
		summaries[m] = summary
	}
	return summaries
}
