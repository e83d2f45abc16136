package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/qubix-crm/crm-backend-go/internal/domain/employee"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/database"
)

type EmployeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `
	id, first_name, last_name, email, role, department, avatar_url,
	created_at, updated_at, deleted_at
`

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Role,
		&e.Department, &e.AvatarURL,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`, employeeColumns)

	e, err := scanEmployee(querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("get employee by id: %w", err)
	}

	return e, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE deleted_at IS NULL
		ORDER BY first_name, last_name
	`, employeeColumns)

	rows, err := querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *EmployeeRepository) ListByRoles(ctx context.Context, roles []employee.Role) ([]employee.Employee, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE role = ANY($1) AND deleted_at IS NULL
		ORDER BY first_name, last_name
	`, employeeColumns)

	roleStrings := make([]string, len(roles))
	for i, ro := range roles {
		roleStrings[i] = string(ro)
	}

	rows, err := querier.Query(ctx, query, roleStrings)
	if err != nil {
		return nil, fmt.Errorf("list employees by roles: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}
