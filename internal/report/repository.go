package report

import "context"

// Repository persists report records and their status transitions.
type Repository interface {
	Create(ctx context.Context, r *Report) (int, error)
	Get(ctx context.Context, id int) (*Report, error)
	UpdateStatus(ctx context.Context, id int, status Status, errDetail *string) error
	SaveText(ctx context.Context, id int, textKey string) error
	MarkDone(ctx context.Context, id int, resultKey, patientName, testDate string) error
}
