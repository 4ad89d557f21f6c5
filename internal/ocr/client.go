package ocr

import "context"

// Client is the provider boundary. Responses are decoded into package
// types here so the orchestrator never inspects provider shapes.
type Client interface {
	// Detect runs synchronous text detection on raw image bytes.
	Detect(ctx context.Context, data []byte) ([]Block, error)

	// Submit starts an async text detection job for a stored document
	// and returns the provider-issued job ID.
	Submit(ctx context.Context, ref DocumentRef) (string, error)

	// Poll fetches the job status and one page of results. nextToken is
	// empty for the first call and carries the continuation token on
	// subsequent pages.
	Poll(ctx context.Context, jobID, nextToken string) (*JobPage, error)
}
