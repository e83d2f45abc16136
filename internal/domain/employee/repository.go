package employee

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context) ([]Employee, error)
	ListByRoles(ctx context.Context, roles []Role) ([]Employee, error)
}
