package eval

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
)

// WriteDataset assembles the corpus-evaluation dataset: answered rows from
// a batch-answer CSV joined with retrieval contexts, one JSON-encoded
// context list per row, in the four-column shape the corpus-level metric
// tooling expects. Rows with an empty or clarification answer are dropped.
func WriteDataset(answersPath, outPath string, contexts [][]string) error {
	f, err := os.Open(answersPath)
	if err != nil {
		return fmt.Errorf("opening answers table: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("reading answers table: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("answers table %s is empty", answersPath)
	}

	questionCol, answerCol, refCol := -1, -1, -1
	for i, name := range records[0] {
		switch name {
		case "question":
			questionCol = i
		case "copilot_answer":
			answerCol = i
		case "luisgpt_answer":
			refCol = i
		}
	}
	if questionCol < 0 || answerCol < 0 || refCol < 0 {
		return fmt.Errorf("answers table %s must contain question, copilot_answer and luisgpt_answer columns", answersPath)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"question", "answer", "ground_truth", "contexts"}); err != nil {
		return err
	}

	written := 0
	for _, record := range records[1:] {
		answer := record[answerCol]
		if answer == "" || answer == ClarificationSentinel {
			continue
		}

		rowContexts := []string{}
		if written < len(contexts) {
			rowContexts = contexts[written]
		}
		encoded, err := json.Marshal(rowContexts)
		if err != nil {
			return err
		}

		if err := w.Write([]string{record[questionCol], answer, record[refCol], string(encoded)}); err != nil {
			return err
		}
		written++
	}

	w.Flush()
	return w.Error()
}
