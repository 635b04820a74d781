package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrNameTaken        = errors.New("category name already exists")
	ErrHasProducts      = errors.New("category has products")
)

const PgUniqueViolation = "23505"
