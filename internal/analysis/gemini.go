package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"

	"google.golang.org/genai"
)

const defaultEmbeddingModel = "text-embedding-004"

var errNoEmbedding = errors.New("embedding response incomplete")

// embedder turns texts into vectors, one per input, in input order.
type embedder interface {
	Embed(ctx context.Context, texts ...string) ([][]float32, error)
}

// Similarity is the cosine similarity of two texts' embeddings.
type Similarity struct {
	embedder embedder
}

// Similarity returns the cosine of the angle between the embeddings of a and b.
func (s *Similarity) Similarity(ctx context.Context, a, b string) (float64, error) {
	vecs, err := s.embedder.Embed(ctx, a, b)
	if err != nil {
		return 0, err
	}
	if len(vecs) != 2 {
		return 0, errNoEmbedding
	}
	return cosine(vecs[0], vecs[1])
}

func cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("embedding sizes %d and %d", len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, errors.New("zero embedding vector")
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// geminiEmbedder embeds through the Gemini API.
type geminiEmbedder struct {
	client *genai.Client
	model  string
}

func (g geminiEmbedder) Embed(ctx context.Context, texts ...string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.Text(t)...)
	}
	resp, err := g.client.Models.EmbedContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	out := make([][]float32, 0, len(resp.Embeddings))
	for _, e := range resp.Embeddings {
		if e == nil {
			return nil, errNoEmbedding
		}
		out = append(out, e.Values)
	}
	return out, nil
}

// NewGeminiSimilarity builds a similarity scorer on Gemini text embeddings.
// baseURL is empty except to point the client at another endpoint.
func NewGeminiSimilarity(ctx context.Context, apiKey, model, baseURL string) (*Similarity, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key required")
	}
	if model == "" {
		model = defaultEmbeddingModel
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Similarity{embedder: geminiEmbedder{client: client, model: model}}, nil
}
