package llm

import (
	"context"
	"log"

	"github.com/Octopus30/health-analysis/internal/chunk"
)

// ChunkResult records the outcome of one chunk's model call. Either
// Response or Err is set, never both.
type ChunkResult struct {
	Chunk    int
	Response *Response
	Err      error
}

type Service struct {
	client       Client
	maxChunkSize int
}

func NewService(client Client) *Service {
	return &Service{
		client:       client,
		maxChunkSize: chunk.DefaultMaxChunkSize,
	}
}

// Run splits text into chunks and invokes the model once per chunk with
// the task's prompt. A failed call is logged and recorded; it never
// aborts the batch. When every chunk fails the caller sees zero
// successes, not an error.
func (s *Service) Run(ctx context.Context, text string, task Task) []ChunkResult {
	chunks := chunk.Split(text, s.maxChunkSize)
	results := make([]ChunkResult, 0, len(chunks))

	for i, c := range chunks {
		log.Printf("LLM_CHUNK %d/%d size=%d", i+1, len(chunks), len(c))

		resp, err := s.client.Invoke(ctx, BuildPrompt(task, c))
		if err != nil {
			log.Printf("LLM_CHUNK_FAILED %d/%d: %v", i+1, len(chunks), err)
			results = append(results, ChunkResult{Chunk: i, Err: err})
			continue
		}
		results = append(results, ChunkResult{Chunk: i, Response: resp})
	}

	return results
}

// Successes returns the responses of successful chunks in submission
// order.
func Successes(results []ChunkResult) []*Response {
	var responses []*Response
	for _, r := range results {
		if r.Err == nil && r.Response != nil {
			responses = append(responses, r.Response)
		}
	}
	return responses
}

// Failures counts chunks whose model call failed.
func Failures(results []ChunkResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
