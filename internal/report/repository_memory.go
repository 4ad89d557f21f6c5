package report

import (
	"context"
	"errors"
	"time"
)

// InMemoryRepository is used by tests and local runs without Postgres.
type InMemoryRepository struct {
	reports map[int]*Report
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		reports: make(map[int]*Report),
		nextID:  1,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, rep *Report) (int, error) {
	rep.ID = r.nextID
	r.nextID++
	rep.Status = StatusUploaded
	rep.CreatedAt = time.Now()
	rep.UpdatedAt = rep.CreatedAt
	r.reports[rep.ID] = rep
	return rep.ID, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id int) (*Report, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, errors.New("report not found")
	}
	copied := *rep
	return &copied, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id int, status Status, errDetail *string) error {
	rep, ok := r.reports[id]
	if !ok {
		return errors.New("report not found")
	}
	rep.Status = status
	if errDetail != nil {
		rep.ErrorDetail = *errDetail
	}
	rep.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) SaveText(ctx context.Context, id int, textKey string) error {
	rep, ok := r.reports[id]
	if !ok {
		return errors.New("report not found")
	}
	rep.TextKey = textKey
	rep.Status = StatusExtracted
	rep.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) MarkDone(ctx context.Context, id int, resultKey, patientName, testDate string) error {
	rep, ok := r.reports[id]
	if !ok {
		return errors.New("report not found")
	}
	rep.Status = StatusDone
	rep.ResultKey = resultKey
	rep.PatientName = patientName
	rep.TestDate = testDate
	rep.UpdatedAt = time.Now()
	return nil
}
