package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/qubix-crm/crm-backend-go/internal/domain/attendance"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/database"
)

type AttendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, work_date, sign_in_at, sign_out_at, status,
	late_minutes, total_worked_minutes,
	sign_in_latitude, sign_in_longitude, sign_in_address,
	sign_out_latitude, sign_out_longitude, sign_out_address,
	created_at, updated_at
`

func scanAttendance(row pgx.Row) (*attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.SignInAt, &rec.SignOutAt, &rec.Status,
		&rec.LateMinutes, &rec.TotalWorkedMinutes,
		&rec.SignInLatitude, &rec.SignInLongitude, &rec.SignInAddress,
		&rec.SignOutLatitude, &rec.SignOutLongitude, &rec.SignOutAddress,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *AttendanceRepository) Create(ctx context.Context, rec *attendance.Record) error {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, work_date, sign_in_at, status, late_minutes,
			sign_in_latitude, sign_in_longitude, sign_in_address,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	`

	_, err := querier.Exec(ctx, query,
		rec.ID, rec.EmployeeID, rec.WorkDate, rec.SignInAt, rec.Status, rec.LateMinutes,
		rec.SignInLatitude, rec.SignInLongitude, rec.SignInAddress,
		rec.CreatedAt,
	)
	if err != nil {
		// unique index on (employee_id, work_date) resolves sign-in races
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.ErrAlreadySignedIn
		}
		return fmt.Errorf("create attendance record: %w", err)
	}

	return nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*attendance.Record, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendance_records
		WHERE employee_id = $1 AND work_date = $2
	`, attendanceColumns)

	rec, err := scanAttendance(querier.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("get attendance record: %w", err)
	}

	return rec, nil
}

func (r *AttendanceRepository) Update(ctx context.Context, rec *attendance.Record) error {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET sign_out_at = $1, total_worked_minutes = $2,
		    sign_out_latitude = $3, sign_out_longitude = $4, sign_out_address = $5,
		    updated_at = NOW()
		WHERE id = $6
	`

	tag, err := querier.Exec(ctx, query,
		rec.SignOutAt, rec.TotalWorkedMinutes,
		rec.SignOutLatitude, rec.SignOutLongitude, rec.SignOutAddress,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func (r *AttendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendance_records
		WHERE employee_id = $1 AND work_date >= $2 AND work_date <= $3
		ORDER BY work_date DESC
	`, attendanceColumns)

	rows, err := querier.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendance by employee: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func (r *AttendanceRepository) ListByDate(ctx context.Context, workDate time.Time) ([]attendance.Record, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendance_records
		WHERE work_date = $1
	`, attendanceColumns)

	rows, err := querier.Query(ctx, query, workDate)
	if err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func (r *AttendanceRepository) ListBetween(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendance_records
		WHERE work_date >= $1 AND work_date <= $2
		ORDER BY work_date
	`, attendanceColumns)

	rows, err := querier.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendance between dates: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance records: %w", err)
	}
	return records, nil
}
