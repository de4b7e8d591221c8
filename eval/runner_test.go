package eval

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WildSphee/copilot-testing/copilot"
)

type fakeChat struct {
	answer copilot.Answer
	calls  int
}

func (f *fakeChat) Ask(ctx context.Context, question string) copilot.Answer {
	f.calls++
	return f.answer
}

type fakeJudge struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeJudge) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	i := f.calls - 1
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i], nil
}

func TestRetryThenDegrade(t *testing.T) {
	chat := &fakeChat{answer: copilot.Answer{Text: "Some answer.", ResponseTime: 1.0}}
	judge := &fakeJudge{responses: []string{"this is not json"}}
	runner := NewRunner(chat, judge)

	rows := runner.Run(context.Background(), []InputRow{
		{Question: "Q1", ReferenceAnswer: "R1"},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, 2, judge.calls, "judge must be called exactly twice before degrading")
	assert.Equal(t, 1, chat.calls, "the chat turn is cached across judge retries")

	require.Len(t, rows[0].Scores, len(Metrics))
	for _, m := range Metrics {
		assert.Equal(t, 0, rows[0].Scores[m].Rating)
		assert.Equal(t, FallbackReason, rows[0].Scores[m].Reason)
	}
}

func TestSecondJudgeAttemptRecovers(t *testing.T) {
	chat := &fakeChat{answer: copilot.Answer{Text: "Some answer.", ResponseTime: 0.8}}
	judge := &fakeJudge{responses: []string{"garbage", "```json\n" + wellFormedRubric + "\n```"}}
	runner := NewRunner(chat, judge)

	rows := runner.Run(context.Background(), []InputRow{
		{Question: "Q1", ReferenceAnswer: "R1"},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, 2, judge.calls)
	assert.Equal(t, 1, chat.calls)
	assert.Equal(t, 9, rows[0].Scores[MetricOverall].Rating)
	assert.Equal(t, 0.8, rows[0].ResponseTime)
}

func TestJudgeTransportFailureDegrades(t *testing.T) {
	chat := &fakeChat{answer: copilot.Answer{Text: "Some answer.", ResponseTime: 0.5}}
	judge := &fakeJudge{err: fmt.Errorf("openai api call failed")}
	runner := NewRunner(chat, judge)

	rows := runner.Run(context.Background(), []InputRow{
		{Question: "Q1", ReferenceAnswer: "R1"},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, 2, judge.calls)
	for _, m := range Metrics {
		assert.Equal(t, 0, rows[0].Scores[m].Rating)
	}
}

func TestRunEmitsOneRowPerInput(t *testing.T) {
	chat := &fakeChat{answer: copilot.Answer{Text: "Answer.", ResponseTime: 0.1}}
	judge := &fakeJudge{responses: []string{wellFormedRubric}}
	runner := NewRunner(chat, judge)

	in := []InputRow{
		{Question: "Q1", ReferenceAnswer: "R1"},
		{Question: "Q2", ReferenceAnswer: "R2"},
		{Question: "Q3", ReferenceAnswer: "R3"},
	}
	rows := runner.Run(context.Background(), in)

	require.Len(t, rows, len(in))
	for i, row := range rows {
		assert.Equal(t, in[i].Question, row.Question)
		assert.Equal(t, in[i].ReferenceAnswer, row.ReferenceAnswer)
		require.Len(t, row.Scores, len(Metrics))
		for _, m := range Metrics {
			rating := row.Scores[m].Rating
			assert.GreaterOrEqual(t, rating, 0)
			assert.LessOrEqual(t, rating, 10)
		}
	}
}

func TestEndToEndRefundExample(t *testing.T) {
	chat := &fakeChat{answer: copilot.Answer{
		Text:         "You can get a refund within 30 days of purchase.",
		ResponseTime: 1.2,
	}}
	judge := &fakeJudge{responses: []string{"```json\n" + wellFormedRubric + "\n```"}}
	runner := NewRunner(chat, judge)

	rows := runner.Run(context.Background(), []InputRow{
		{Question: "What is the refund policy?", ReferenceAnswer: "Refunds within 30 days."},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, 1.2, rows[0].ResponseTime)
	assert.Equal(t, 9, rows[0].Scores[MetricOverall].Rating)
	assert.NotEqual(t, ClarificationSentinel, rows[0].CopilotAnswer)
}

func TestGenerateAnswersSkipsClarificationRows(t *testing.T) {
	chat := &fakeChat{answer: copilot.Answer{Text: ClarificationSentinel, ResponseTime: 0.3}}

	answers := GenerateAnswers(context.Background(), chat, []InputRow{
		{Question: "Q1", ReferenceAnswer: "R1"},
		{Question: "Q2", ReferenceAnswer: "R2"},
	})

	assert.Empty(t, answers)
	assert.Equal(t, 2, chat.calls)
}

func TestGenerateAnswersKeepsBackendFailures(t *testing.T) {
	chat := &fakeChat{answer: copilot.Answer{}}

	answers := GenerateAnswers(context.Background(), chat, []InputRow{
		{Question: "Q1", ReferenceAnswer: "R1"},
	})

	require.Len(t, answers, 1)
	assert.Equal(t, "", answers[0].CopilotAnswer)
	assert.Equal(t, float64(0), answers[0].ResponseTime)
}
