package eval

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// timeLayout produces the MM_DD_HHMM suffix on output file names.
const timeLayout = "01_02_1504"

// WriteResults writes the evaluation table to
// <dir>/<prefix>_<MM_DD_HHMM>.csv and returns the file path. Rows whose
// candidate answer is the clarification sentinel are dropped here.
func WriteResults(dir, prefix string, rows []Row, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, now.Format(timeLayout)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"Question", "copilot_answer", "luisgpt_answer", "response_time"}
	for _, m := range Metrics {
		header = append(header, m+"_rating", m+"_reason")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, row := range rows {
		if row.CopilotAnswer == ClarificationSentinel {
			continue
		}
		record := []string{
			row.Question,
			row.CopilotAnswer,
			row.ReferenceAnswer,
			strconv.FormatFloat(row.ResponseTime, 'f', -1, 64),
		}
		for _, m := range Metrics {
			score := row.Scores[m]
			record = append(record, strconv.Itoa(score.Rating), score.Reason)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}

// WriteAnswers writes the batch-answer table to
// <dir>/<prefix>_<MM_DD_HHMM>.csv and returns the file path.
func WriteAnswers(dir, prefix string, rows []AnswerRow, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, now.Format(timeLayout)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating answers file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"question", "copilot_answer", "luisgpt_answer", "response_time"}); err != nil {
		return "", err
	}
	for _, row := range rows {
		record := []string{
			row.Question,
			row.CopilotAnswer,
			row.ReferenceAnswer,
			strconv.FormatFloat(row.ResponseTime, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}
