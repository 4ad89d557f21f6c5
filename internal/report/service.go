package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Octopus30/health-analysis/internal/llm"
	"github.com/Octopus30/health-analysis/internal/ocr"
)

// ErrUnsupportedMediaType means the uploaded file's extension is not a
// supported image or PDF type. Fatal for that document, no retry.
var ErrUnsupportedMediaType = errors.New("unsupported file type")

type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Bucket() string
}

type Extractor interface {
	ExtractImage(ctx context.Context, data []byte) ([]string, error)
	ExtractDocument(ctx context.Context, ref ocr.DocumentRef) ([]string, error)
}

type Invoker interface {
	Run(ctx context.Context, text string, task llm.Task) []llm.ChunkResult
}

type Service struct {
	repo    Repository
	storage Storage
	ocr     Extractor
	llm     Invoker
}

func NewService(repo Repository, storage Storage, ocr Extractor, llm Invoker) *Service {
	return &Service{
		repo:    repo,
		storage: storage,
		ocr:     ocr,
		llm:     llm,
	}
}

// UploadReport stores the document and creates its tracking record.
func (s *Service) UploadReport(ctx context.Context, file io.Reader, filename string) (*Report, error) {
	mediaType, err := mediaTypeFor(filename)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("uploads/%s%s", uuid.New().String(), ext)

	if _, err := s.storage.Upload(ctx, key, file, ""); err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}

	rep := &Report{
		ObjectKey: key,
		Filename:  filename,
		MediaType: mediaType,
	}
	if _, err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}

	log.Printf("REPORT_UPLOADED id=%d key=%s type=%s", rep.ID, key, mediaType)
	return rep, nil
}

// Extract runs the full structured-extraction pipeline for a report:
// OCR text, chunked model calls, reconciliation into a flat table, CSV
// and debug artifacts in object storage. Partial chunk failures degrade
// to a smaller table; only document-level failures are fatal.
func (s *Service) Extract(ctx context.Context, id int) (*ResultTable, *Report, error) {
	rep, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	_ = s.repo.UpdateStatus(ctx, id, StatusExtracting, nil)

	text, err := s.extractText(ctx, rep)
	if err != nil {
		s.fail(ctx, id, err)
		return nil, nil, err
	}

	textKey := fmt.Sprintf("text/%s_textract.txt", artifactBase(rep.Filename))
	if _, err := s.storage.Upload(ctx, textKey, strings.NewReader(text), "text/plain"); err != nil {
		s.fail(ctx, id, err)
		return nil, nil, fmt.Errorf("save extracted text: %w", err)
	}
	_ = s.repo.SaveText(ctx, id, textKey)
	_ = s.repo.UpdateStatus(ctx, id, StatusParsing, nil)

	results := s.llm.Run(ctx, text, llm.TaskExtract)
	if n := llm.Failures(results); n > 0 {
		log.Printf("REPORT_CHUNKS_FAILED id=%d failed=%d total=%d", id, n, len(results))
	}

	responses := llm.Successes(results)
	table, patientName, testDate := Reconcile(responses)
	testDate = strings.ReplaceAll(testDate, "/", "")

	csvContent, err := table.CSV()
	if err != nil {
		s.fail(ctx, id, err)
		return nil, nil, err
	}

	resultKey := resultKeyFor(patientName, rep.Filename)
	if _, err := s.storage.Upload(ctx, resultKey, strings.NewReader(csvContent), "text/csv"); err != nil {
		s.fail(ctx, id, err)
		return nil, nil, fmt.Errorf("save result csv: %w", err)
	}

	// raw model responses are kept alongside the CSV for debugging
	if debug, derr := json.MarshalIndent(responses, "", "  "); derr == nil {
		debugKey := strings.TrimSuffix(resultKey, "_results.csv") + "_responses.json"
		if _, uerr := s.storage.Upload(ctx, debugKey, bytes.NewReader(debug), "application/json"); uerr != nil {
			log.Printf("REPORT_DEBUG_SAVE_FAILED id=%d: %v", id, uerr)
		}
	}

	if err := s.repo.MarkDone(ctx, id, resultKey, patientName, testDate); err != nil {
		return nil, nil, err
	}

	rep, err = s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("REPORT_DONE id=%d rows=%d result=%s", id, len(table.Rows), resultKey)
	return table, rep, nil
}

// Analyze produces a narrative summary of the report. Does not change
// the report's extraction status.
func (s *Service) Analyze(ctx context.Context, id int) (string, error) {
	rep, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}

	text, err := s.extractText(ctx, rep)
	if err != nil {
		return "", err
	}

	results := s.llm.Run(ctx, text, llm.TaskAnalyze)
	if n := llm.Failures(results); n > 0 {
		log.Printf("REPORT_CHUNKS_FAILED id=%d failed=%d total=%d", id, n, len(results))
	}

	return Narrative(llm.Successes(results)), nil
}

func (s *Service) GetReport(ctx context.Context, id int) (*Report, error) {
	return s.repo.Get(ctx, id)
}

// DownloadResult returns the stored result CSV for a processed report.
func (s *Service) DownloadResult(ctx context.Context, id int) ([]byte, error) {
	rep, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep.ResultKey == "" {
		return nil, errors.New("report has no results yet")
	}
	return s.storage.Download(ctx, rep.ResultKey)
}

// extractText runs the OCR path matching the document's media type:
// images go through synchronous detection on the raw bytes, PDFs through
// the async job against the stored object. Previously extracted text is
// reused when available.
func (s *Service) extractText(ctx context.Context, rep *Report) (string, error) {
	if rep.TextKey != "" {
		data, err := s.storage.Download(ctx, rep.TextKey)
		if err == nil {
			return string(data), nil
		}
		log.Printf("REPORT_TEXT_REFETCH id=%d: %v", rep.ID, err)
	}

	var lines []string
	var err error

	switch rep.MediaType {
	case MediaTypeImage:
		var data []byte
		data, err = s.storage.Download(ctx, rep.ObjectKey)
		if err != nil {
			return "", fmt.Errorf("download document: %w", err)
		}
		lines, err = s.ocr.ExtractImage(ctx, data)
	default:
		lines, err = s.ocr.ExtractDocument(ctx, ocr.DocumentRef{
			Bucket: s.storage.Bucket(),
			Key:    rep.ObjectKey,
		})
	}
	if err != nil {
		return "", err
	}

	return strings.Join(lines, "\n"), nil
}

func (s *Service) fail(ctx context.Context, id int, cause error) {
	msg := cause.Error()
	if err := s.repo.UpdateStatus(ctx, id, StatusFailed, &msg); err != nil {
		log.Printf("REPORT_STATUS_UPDATE_FAILED id=%d: %v", id, err)
	}
}

func mediaTypeFor(filename string) (MediaType, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg":
		return MediaTypeImage, nil
	case ".pdf":
		return MediaTypePDF, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, filepath.Ext(filename))
	}
}

// artifactBase is the uploaded file's name without extension, spaces
// replaced by underscores.
func artifactBase(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.ReplaceAll(base, " ", "_")
}

func resultKeyFor(patientName, filename string) string {
	name := strings.ReplaceAll(patientName, " ", "_")
	return fmt.Sprintf(
		"results/%s%s%s_results.csv",
		name,
		time.Now().Format("02012006"),
		artifactBase(filename),
	)
}
