package report

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/Octopus30/health-analysis/internal/llm"
)

// Reconcile flattens the structured JSON embedded in each model response
// into table rows. A response without a parseable payload contributes
// zero rows and never aborts the batch. Also returns the last parsed
// group's patient name and test date, used to name downstream artifacts;
// when responses carry different patient identities the last one wins.
func Reconcile(responses []*llm.Response) (*ResultTable, string, string) {
	table := &ResultTable{}
	var lastName, lastDate string
	skipped := 0

	for i, resp := range responses {
		payload, ok := extractPayload(resp.FirstText())
		if !ok {
			skipped++
			log.Printf("RECONCILE_SKIP response=%d: no parseable JSON payload", i+1)
			continue
		}

		for _, group := range payload.TestGroups {
			for _, test := range group.Tests {
				table.Rows = append(table.Rows, Row{
					TestGroup:      group.GroupName,
					PatientName:    group.Name,
					Age:            group.Age,
					TestDate:       group.Date,
					TestName:       test.TestName,
					Result:         test.Result,
					ReferenceRange: test.ReferenceRange,
					Unit:           test.Unit,
				})
			}
			lastName = group.Name
			lastDate = group.Date
		}
	}

	log.Printf("RECONCILE_DONE rows=%d skipped_responses=%d", len(table.Rows), skipped)
	return table, lastName, lastDate
}

// extractPayload pulls the JSON document between the first '{' and the
// last '}' out of the model's free-form text, tolerating prose or
// markdown fences around the payload.
func extractPayload(text string) (*extractionPayload, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, false
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		log.Printf("RECONCILE_PARSE_ERROR: %v", err)
		return nil, false
	}
	return &payload, true
}
