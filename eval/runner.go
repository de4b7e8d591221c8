package eval

import (
	"context"
	"log/slog"

	"github.com/WildSphee/copilot-testing/copilot"
)

// ChatClient produces one candidate answer per question. Backend failures
// surface as an empty Answer, never as an error.
type ChatClient interface {
	Ask(ctx context.Context, question string) copilot.Answer
}

// JudgeClient scores one rubric prompt and returns its raw text output.
type JudgeClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Runner drives the per-question evaluation loop.
type Runner struct {
	chat  ChatClient
	judge JudgeClient
}

// NewRunner creates a Runner over the given clients.
func NewRunner(chat ChatClient, judge JudgeClient) *Runner {
	return &Runner{chat: chat, judge: judge}
}

// Run evaluates every input row in order and emits exactly one Row per
// input row. Sentinel-clarification answers are kept here and filtered
// when the result table is written.
func (r *Runner) Run(ctx context.Context, rows []InputRow) []Row {
	results := make([]Row, 0, len(rows))
	for i, in := range rows {
		slog.Info("evaluating row", "row", i, "question", in.Question)
		row := r.evalRow(ctx, in)
		results = append(results, row)
		slog.Info("row evaluated", "row", i, "overall", row.Scores[MetricOverall].Rating)
	}
	return results
}

// evalRow runs one chat turn and up to two judge attempts against it. The
// candidate answer is cached across attempts: a parse failure is a
// judge-side fault and does not invalidate the chat turn.
func (r *Runner) evalRow(ctx context.Context, in InputRow) Row {
	answer := r.chat.Ask(ctx, in.Question)

	row := Row{
		Question:        in.Question,
		CopilotAnswer:   answer.Text,
		ReferenceAnswer: in.ReferenceAnswer,
		ResponseTime:    answer.ResponseTime,
	}

	prompt := BuildRubricPrompt(in.Question, answer.Text, in.ReferenceAnswer)

	for attempt := 1; attempt <= 2; attempt++ {
		raw, err := r.judge.Complete(ctx, prompt)
		if err != nil {
			slog.Error("judge call failed", "attempt", attempt, "err", err)
			continue
		}
		scores, err := ParseRubric(raw)
		if err != nil {
			slog.Error("judge response unparseable", "attempt", attempt, "err", err)
			continue
		}
		row.Scores = scores
		return row
	}

	slog.Warn("degrading row to zero ratings", "question", in.Question)
	row.Scores = FallbackScores()
	return row
}
