package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrNameTaken        = errors.New("category name already exists in this house")
	ErrCategoryInUse    = errors.New("category still has products")
)
