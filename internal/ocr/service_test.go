package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// mockClient scripts the provider: statusPages answer Poll calls with an
// empty token (last entry repeats), tokenPages answer pagination calls.
type mockClient struct {
	detectBlocks []Block
	detectErr    error

	jobID      string
	statusPages []*JobPage
	tokenPages  map[string]*JobPage

	statusPolls int
	tokenPolls  []string
}

func (m *mockClient) Detect(ctx context.Context, data []byte) ([]Block, error) {
	return m.detectBlocks, m.detectErr
}

func (m *mockClient) Submit(ctx context.Context, ref DocumentRef) (string, error) {
	return m.jobID, nil
}

func (m *mockClient) Poll(ctx context.Context, jobID, nextToken string) (*JobPage, error) {
	if nextToken != "" {
		m.tokenPolls = append(m.tokenPolls, nextToken)
		page, ok := m.tokenPages[nextToken]
		if !ok {
			return nil, errors.New("unknown continuation token")
		}
		return page, nil
	}

	i := m.statusPolls
	if i >= len(m.statusPages) {
		i = len(m.statusPages) - 1
	}
	m.statusPolls++
	return m.statusPages[i], nil
}

func newTestService(client Client) *Service {
	s := NewService(client)
	s.pollInterval = time.Millisecond
	return s
}

func lineBlocks(texts ...string) []Block {
	var blocks []Block
	for _, t := range texts {
		blocks = append(blocks, Block{Type: BlockTypeLine, Text: t})
	}
	return blocks
}

func TestExtractImage_KeepsOnlyLineBlocks(t *testing.T) {
	client := &mockClient{
		detectBlocks: []Block{
			{Type: "PAGE", Text: ""},
			{Type: BlockTypeLine, Text: "Hemoglobin 13.5 g/dL"},
			{Type: "WORD", Text: "Hemoglobin"},
			{Type: BlockTypeLine, Text: "Glucose 95 mg/dL"},
		},
	}

	lines, err := newTestService(client).ExtractImage(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "Hemoglobin 13.5 g/dL" || lines[1] != "Glucose 95 mg/dL" {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestExtractDocument_PaginationCompleteness(t *testing.T) {
	client := &mockClient{
		jobID: "job-1",
		statusPages: []*JobPage{
			{Status: JobStatusRunning},
			{
				Status:    JobStatusSucceeded,
				Blocks:    lineBlocks("page1-a", "page1-b"),
				NextToken: "t2",
			},
		},
		tokenPages: map[string]*JobPage{
			"t2": {
				Status:    JobStatusSucceeded,
				Blocks:    lineBlocks("page2-a"),
				NextToken: "t3",
			},
			"t3": {
				Status: JobStatusSucceeded,
				Blocks: lineBlocks("page3-a", "page3-b"),
			},
		},
	}

	lines, err := newTestService(client).ExtractDocument(
		context.Background(),
		DocumentRef{Bucket: "docs", Key: "report.pdf"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"page1-a", "page1-b", "page2-a", "page3-a", "page3-b"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}

	// every page fetched exactly once, in token order
	if len(client.tokenPolls) != 2 || client.tokenPolls[0] != "t2" || client.tokenPolls[1] != "t3" {
		t.Errorf("unexpected pagination calls: %v", client.tokenPolls)
	}
}

func TestExtractDocument_FailureSurfacesStatusMessage(t *testing.T) {
	client := &mockClient{
		jobID: "job-2",
		statusPages: []*JobPage{
			{Status: JobStatusFailed, StatusMessage: "X"},
		},
	}

	_, err := newTestService(client).ExtractDocument(
		context.Background(),
		DocumentRef{Bucket: "docs", Key: "report.pdf"},
	)
	if err == nil {
		t.Fatal("expected error for failed job")
	}

	var jobErr *JobError
	if !errors.As(err, &jobErr) {
		t.Fatalf("expected *JobError, got %T", err)
	}
	if !strings.Contains(err.Error(), "X") {
		t.Errorf("error should carry provider message, got: %v", err)
	}
}

func TestExtractDocument_FailureWithoutMessage(t *testing.T) {
	client := &mockClient{
		jobID:      "job-3",
		statusPages: []*JobPage{{Status: JobStatusFailed}},
	}

	_, err := newTestService(client).ExtractDocument(
		context.Background(),
		DocumentRef{Bucket: "docs", Key: "report.pdf"},
	)
	if err == nil || !strings.Contains(err.Error(), "no error message provided") {
		t.Fatalf("expected placeholder message, got: %v", err)
	}
}

func TestExtractDocument_ContextDeadlineAbortsWait(t *testing.T) {
	client := &mockClient{
		jobID:      "job-4",
		statusPages: []*JobPage{{Status: JobStatusRunning}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestService(client).ExtractDocument(
		ctx,
		DocumentRef{Bucket: "docs", Key: "report.pdf"},
	)
	if !errors.Is(err, ErrTimedOut) {
		t.Fatalf("expected ErrTimedOut, got: %v", err)
	}
}
