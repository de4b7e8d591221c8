package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/WildSphee/copilot-testing/config"
	"github.com/WildSphee/copilot-testing/corpus"
	"github.com/WildSphee/copilot-testing/eval"
)

func main() {
	answersFile := flag.String("answers", "", "Path to a batch-answer CSV (from genanswers)")
	docsDir := flag.String("docs", "context", "Directory of reference documents (PDF/DOCX)")
	outputFile := flag.String("output", "ragas_dataset.csv", "Path for the corpus-evaluation dataset CSV")
	flag.Parse()

	if *answersFile == "" {
		log.Fatal("-answers is required")
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// The corpus-level metrics call the judge backend for every row, so a
	// missing key must fail before any extraction work starts.
	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required for corpus evaluation")
	}

	fmt.Printf("Extracting reference documents from %s...\n", *docsDir)
	contexts, err := corpus.BuildContexts(*docsDir)
	if err != nil {
		log.Fatalf("Failed to build contexts: %v", err)
	}
	fmt.Printf("Built %d context chunks\n", len(contexts))

	if err := eval.WriteDataset(*answersFile, *outputFile, contexts); err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}

	fmt.Printf("\n✓ Corpus dataset saved to %s\n", *outputFile)
}
