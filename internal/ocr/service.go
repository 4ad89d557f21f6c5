package ocr

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

const defaultPollInterval = 5 * time.Second

// ErrTimedOut is returned when the caller's context expires before the
// detection job reaches a terminal state.
var ErrTimedOut = errors.New("ocr: timed out waiting for job completion")

// JobError is a terminal FAILED status reported by the provider. It is
// fatal for the document and is never retried.
type JobError struct {
	JobID   string
	Message string
}

func (e *JobError) Error() string {
	return fmt.Sprintf("ocr job %s failed: %s", e.JobID, e.Message)
}

type Service struct {
	client       Client
	pollInterval time.Duration
}

func NewService(client Client) *Service {
	return &Service{
		client:       client,
		pollInterval: defaultPollInterval,
	}
}

// ExtractImage runs synchronous detection on a single image and returns
// its text lines in provider order.
func (s *Service) ExtractImage(ctx context.Context, data []byte) ([]string, error) {
	blocks, err := s.client.Detect(ctx, data)
	if err != nil {
		return nil, err
	}

	lines := lineText(blocks)
	log.Printf("OCR_DETECT lines=%d", len(lines))
	return lines, nil
}

// ExtractDocument drives an async detection job from submission to
// completion: submit, poll until terminal, then drain the paginated
// results. Cancelling ctx aborts the wait with ErrTimedOut.
func (s *Service) ExtractDocument(ctx context.Context, ref DocumentRef) ([]string, error) {
	jobID, err := s.client.Submit(ctx, ref)
	if err != nil {
		return nil, err
	}
	log.Printf("OCR_SUBMITTED job=%s key=%s", jobID, ref.Key)

	page, err := s.waitForCompletion(ctx, jobID)
	if err != nil {
		return nil, err
	}

	lines := lineText(page.Blocks)
	for page.NextToken != "" {
		log.Printf("OCR_PAGE job=%s fetching next page", jobID)
		page, err = s.client.Poll(ctx, jobID, page.NextToken)
		if err != nil {
			return nil, err
		}
		lines = append(lines, lineText(page.Blocks)...)
	}

	log.Printf("OCR_DONE job=%s lines=%d", jobID, len(lines))
	return lines, nil
}

// waitForCompletion polls at a fixed interval until the job is terminal.
// On FAILED the provider's status message is surfaced in the error.
func (s *Service) waitForCompletion(ctx context.Context, jobID string) (*JobPage, error) {
	for {
		page, err := s.client.Poll(ctx, jobID, "")
		if err != nil {
			return nil, err
		}
		log.Printf("OCR_POLL job=%s status=%s", jobID, page.Status)

		switch page.Status {
		case JobStatusSucceeded:
			return page, nil
		case JobStatusFailed:
			msg := page.StatusMessage
			if msg == "" {
				msg = "no error message provided"
			}
			return nil, &JobError{JobID: jobID, Message: msg}
		}

		select {
		case <-ctx.Done():
			return nil, ErrTimedOut
		case <-time.After(s.pollInterval):
		}
	}
}

func lineText(blocks []Block) []string {
	var lines []string
	for _, b := range blocks {
		if b.Type == BlockTypeLine {
			lines = append(lines, b.Text)
		}
	}
	return lines
}
