package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/WildSphee/copilot-testing/config"
	"github.com/WildSphee/copilot-testing/copilot"
	"github.com/WildSphee/copilot-testing/eval"
	"github.com/WildSphee/copilot-testing/judge"
)

func main() {
	inputFile := flag.String("input", "testing_set.csv", "Path to the testing set CSV")
	outputDir := flag.String("output-dir", "results", "Directory for the results CSV")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.CopilotInitURL == "" || cfg.CopilotChatURL == "" {
		log.Fatal("COPILOT_INIT and COPILOT_CHAT environment variables are required")
	}

	rows, err := eval.ReadInput(*inputFile)
	if err != nil {
		log.Fatalf("Failed to read input table: %v", err)
	}
	fmt.Printf("Loaded %d questions from %s\n", len(rows), *inputFile)

	runner := eval.NewRunner(copilot.New(cfg), judge.New(cfg))

	fmt.Printf("\nStarting evaluation...\n\n")
	results := runner.Run(ctx, rows)

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	path, err := eval.WriteResults(*outputDir, "evaluation_results", results, time.Now())
	if err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}

	// Display metrics
	summary := eval.Summarize(results)
	separator := strings.Repeat("=", 60)
	fmt.Printf("\n%s\n", separator)
	fmt.Printf("EVALUATION RESULTS\n")
	fmt.Printf("%s\n\n", separator)
	fmt.Printf("Total Questions:     %d\n", len(results))
	for _, m := range eval.Metrics {
		fmt.Printf("%-20s %.2f / 10\n", m+":", summary[m].Average)
	}
	fmt.Printf("\n%s\n", separator)

	fmt.Printf("\n✓ Evaluation complete! Results saved to %s\n", path)
}
