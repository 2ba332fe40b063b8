package product

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrNameTaken           = errors.New("product name already exists in this house")
	ErrCategoryRefNotFound = errors.New("category not found")
)
