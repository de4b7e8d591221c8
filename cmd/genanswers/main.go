package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/WildSphee/copilot-testing/config"
	"github.com/WildSphee/copilot-testing/copilot"
	"github.com/WildSphee/copilot-testing/eval"
)

func main() {
	inputFile := flag.String("input", "testing_set.csv", "Path to the testing set CSV")
	outputDir := flag.String("output-dir", "results", "Directory for the answers CSV")
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

	answers := eval.GenerateAnswers(ctx, copilot.New(cfg), rows)

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	path, err := eval.WriteAnswers(*outputDir, "copilot_result", answers, time.Now())
	if err != nil {
		log.Fatalf("Failed to write answers: %v", err)
	}

	fmt.Printf("\n✓ Generated %d answers (of %d questions). Results saved to %s\n", len(answers), len(rows), path)
}
