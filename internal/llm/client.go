package llm

import "context"

// Segment is one entry of the provider response content array. Exactly
// one text segment is expected per call.
type Segment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Response is the decoded provider envelope. The two shapes the provider
// is known to produce are a content array and a bare top-level text
// field; both are decoded here so callers never shape-sniff.
type Response struct {
	Text    string    `json:"text,omitempty"`
	Content []Segment `json:"content,omitempty"`
}

// FirstText returns the text of the first content segment, or "" when the
// content array is empty.
func (r *Response) FirstText() string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	return r.Content[0].Text
}

// Client is the model-provider boundary.
type Client interface {
	Invoke(ctx context.Context, prompt string) (*Response, error)
}
