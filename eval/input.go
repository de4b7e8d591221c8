package eval

import (
	"encoding/csv"
	"fmt"
	"os"
)

// ReadInput loads the testing set. The CSV must carry "question" and
// "luisgpt_answer" columns; anything else is ignored. A missing required
// column is an error, surfaced before any row is processed.
func ReadInput(path string) ([]InputRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading input table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("input table %s is empty", path)
	}

	questionCol, refCol := -1, -1
	for i, name := range records[0] {
		switch name {
		case "question":
			questionCol = i
		case "luisgpt_answer":
			refCol = i
		}
	}
	if questionCol < 0 || refCol < 0 {
		return nil, fmt.Errorf("input table %s must contain question and luisgpt_answer columns", path)
	}

	rows := make([]InputRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, InputRow{
			Question:        record[questionCol],
			ReferenceAnswer: record[refCol],
		})
	}
	return rows, nil
}
