package ocr

// BlockType classifies a fragment of detected text. Only LINE blocks are
// retained; the provider also emits PAGE and WORD blocks which the
// pipeline discards.
type BlockType string

const BlockTypeLine BlockType = "LINE"

// Block is one text fragment from the provider, in provider order.
type Block struct {
	Type BlockType
	Text string
}

// JobStatus is the lifecycle state of an async text detection job.
type JobStatus string

const (
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusSucceeded JobStatus = "SUCCEEDED"
	JobStatusFailed    JobStatus = "FAILED"
)

// DocumentRef points at a stored document for async detection.
type DocumentRef struct {
	Bucket string
	Key    string
}

// JobPage is one page of results from a text detection job. NextToken is
// empty on the final page.
type JobPage struct {
	Status        JobStatus
	Blocks        []Block
	NextToken     string
	StatusMessage string
}
