package report

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rep *Report) (int, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO reports (object_key, filename, media_type, status)
		VALUES ($1, $2, $3, 'UPLOADED')
		RETURNING id, created_at, updated_at
	`, rep.ObjectKey, rep.Filename, rep.MediaType).
		Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return 0, err
	}

	rep.Status = StatusUploaded
	return rep.ID, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int) (*Report, error) {
	var rep Report
	err := r.db.QueryRow(ctx, `
		SELECT id, object_key, filename, media_type, status,
		       COALESCE(error_detail, ''),
		       COALESCE(text_key, ''),
		       COALESCE(result_key, ''),
		       COALESCE(patient_name, ''),
		       COALESCE(test_date, ''),
		       created_at, updated_at
		FROM reports
		WHERE id = $1
	`, id).Scan(
		&rep.ID, &rep.ObjectKey, &rep.Filename, &rep.MediaType, &rep.Status,
		&rep.ErrorDetail, &rep.TextKey, &rep.ResultKey,
		&rep.PatientName, &rep.TestDate,
		&rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int, status Status, errDetail *string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE reports
		SET status = $1,
		    error_detail = $2,
		    updated_at = now()
		WHERE id = $3
	`, status, errDetail, id)
	return err
}

func (r *PostgresRepository) SaveText(ctx context.Context, id int, textKey string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE reports
		SET text_key = $1,
		    status = 'EXTRACTED',
		    updated_at = now()
		WHERE id = $2
	`, textKey, id)
	return err
}

func (r *PostgresRepository) MarkDone(ctx context.Context, id int, resultKey, patientName, testDate string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE reports
		SET status = 'DONE',
		    result_key = $1,
		    patient_name = $2,
		    test_date = $3,
		    updated_at = now()
		WHERE id = $4
	`, resultKey, patientName, testDate, id)
	return err
}
