package corpus

import "github.com/google/uuid"

// Chunk is one retrieval-context row.
type Chunk struct {
	ID     string
	Source string
	Text   string
}

// BuildChunks extracts and splits every document under root, keeping
// chunk identity for logs and datasets.
func BuildChunks(root string) ([]Chunk, error) {
	docs, err := ExtractDir(root)
	if err != nil {
		return nil, err
	}

	splitter := NewSplitter()
	var chunks []Chunk
	for _, doc := range docs {
		for _, text := range splitter.Split(doc.Text) {
			chunks = append(chunks, Chunk{
				ID:     uuid.New().String(),
				Source: doc.Path,
				Text:   text,
			})
		}
	}
	return chunks, nil
}

// BuildContexts returns one single-element context list per chunk, the
// one-context-per-question tabular shape the corpus-level metrics expect.
func BuildContexts(root string) ([][]string, error) {
	chunks, err := BuildChunks(root)
	if err != nil {
		return nil, err
	}

	contexts := make([][]string, 0, len(chunks))
	for _, chunk := range chunks {
		contexts = append(contexts, []string{chunk.Text})
	}
	return contexts, nil
}
