package report

import "time"

// MediaType is the declared kind of an uploaded document.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypePDF   MediaType = "pdf"
)

// Status is the processing lifecycle of an uploaded report.
type Status string

const (
	StatusUploaded   Status = "UPLOADED"
	StatusExtracting Status = "EXTRACTING"
	StatusExtracted  Status = "EXTRACTED"
	StatusParsing    Status = "PARSING"
	StatusDone       Status = "DONE"
	StatusFailed     Status = "FAILED"
)

// Report tracks one uploaded document and its artifacts.
type Report struct {
	ID          int       `json:"id"`
	ObjectKey   string    `json:"object_key"`
	Filename    string    `json:"filename"`
	MediaType   MediaType `json:"media_type"`
	Status      Status    `json:"status"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	TextKey     string    `json:"text_key,omitempty"`
	ResultKey   string    `json:"result_key,omitempty"`
	PatientName string    `json:"patient_name,omitempty"`
	TestDate    string    `json:"test_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Row is one flattened test result carrying its group's patient metadata.
type Row struct {
	TestGroup      string `json:"test_group"`
	PatientName    string `json:"patient_name"`
	Age            string `json:"age"`
	TestDate       string `json:"test_date"`
	TestName       string `json:"test_name"`
	Result         string `json:"result"`
	ReferenceRange string `json:"reference_range"`
	Unit           string `json:"unit"`
}

// ResultTable is the flattened output of reconciliation.
type ResultTable struct {
	Rows []Row `json:"rows"`
}

// extractionPayload is the JSON schema the extraction prompt instructs
// the model to produce. Every field is optional; missing values decode
// to empty strings.
type extractionPayload struct {
	TestGroups []testGroup `json:"test_groups"`
}

type testGroup struct {
	GroupName string       `json:"group_name"`
	Name      string       `json:"name"`
	Date      string       `json:"date"`
	Age       string       `json:"age"`
	Tests     []testRecord `json:"tests"`
}

type testRecord struct {
	TestName       string `json:"test_name"`
	Result         string `json:"result"`
	ReferenceRange string `json:"reference_range"`
	Unit           string `json:"unit"`
}
