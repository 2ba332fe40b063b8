package shoppinglist

import "errors"

var (
	ErrListNotFound   = errors.New("shopping list not found")
	ErrItemNotFound   = errors.New("shopping list item not found")
	ErrItemExists     = errors.New("product is already on the shopping list")
	ErrUnknownProduct = errors.New("product not found in this house")
)
