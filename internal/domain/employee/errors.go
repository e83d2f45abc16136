package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrForbidden        = errors.New("employee is not allowed to perform this action")
)
