package eval

import (
	"context"
	"log/slog"
)

// GenerateAnswers runs the batch path: one chat turn per question, no
// judging. Rows whose answer is the clarification sentinel are skipped
// outright since no judging has been spent on them.
func GenerateAnswers(ctx context.Context, chat ChatClient, rows []InputRow) []AnswerRow {
	out := make([]AnswerRow, 0, len(rows))
	for i, in := range rows {
		slog.Info("generating answer", "row", i, "question", in.Question)
		answer := chat.Ask(ctx, in.Question)

		if answer.Text == ClarificationSentinel {
			slog.Warn("skipping row: clarification answer", "row", i)
			continue
		}

		out = append(out, AnswerRow{
			Question:        in.Question,
			CopilotAnswer:   answer.Text,
			ReferenceAnswer: in.ReferenceAnswer,
			ResponseTime:    answer.ResponseTime,
		})
	}
	return out
}
