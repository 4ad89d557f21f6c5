package report

import (
	"bytes"
	"encoding/csv"
)

var csvHeader = []string{
	"Test_Group", "Patient_Name", "age", "Date_of_test",
	"Test_Name", "Result", "Reference_Range", "Unit",
}

// CSV renders the table with the fixed export header, one row per test.
func (t *ResultTable) CSV() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, row := range t.Rows {
		record := []string{
			row.TestGroup,
			row.PatientName,
			row.Age,
			row.TestDate,
			row.TestName,
			row.Result,
			row.ReferenceRange,
			row.Unit,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}
