package handler

import (
	"regexp"

	housedomain "home-inventory-go/internal/domain/house"
	"home-inventory-go/internal/validate"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var authenticateSchema = validate.Schema{
	{Field: "email", Required: true, String: true, Pattern: emailPattern, PatternMessage: "Email is not valid."},
	{Field: "password", Required: true, String: true, MinLen: 6, MinLenMessage: "Password must be at least 6 characters long."},
}

var newPasswordSchema = validate.Schema{
	{Field: "oldPassword", Required: true, String: true},
	{Field: "newPassword", Required: true, String: true, MinLen: 6, MinLenMessage: "Password must be at least 6 characters long."},
	{Field: "confirmPassword", Required: true, String: true},
}

var houseSchema = validate.Schema{
	{Field: "name", Required: true, String: true, MinLen: 2, MinLenMessage: "Name must be at least 2 characters long."},
	{Field: "currency", String: true},
}

var productSchema = validate.Schema{
	{Field: "name", Required: true, String: true},
	{Field: "quantity", Required: true, Numeric: true},
	{Field: "price", Required: true, Numeric: true},
	{Field: "expirationDate", Nullable: true, String: true},
	{Field: "categoryId", Nullable: true, String: true},
	{Field: "warnOnQuantity", Nullable: true, Numeric: true},
	{Field: "ignoreQuantityWarning", Boolean: true},
	{Field: "createdAt", Nullable: true, String: true},
}

// importProductSchema drops createdAt typing strictness to what exported
// payloads actually carry; products reference their category by name.
var importProductSchema = validate.Schema{
	{Field: "name", Required: true, String: true},
	{Field: "quantity", Required: true, Numeric: true},
	{Field: "price", Required: true, Numeric: true},
	{Field: "expirationDate", Nullable: true, String: true},
	{Field: "category", Nullable: true, String: true},
	{Field: "warnOnQuantity", Nullable: true, Numeric: true},
	{Field: "ignoreQuantityWarning", Boolean: true},
}

var categorySchema = validate.Schema{
	{Field: "name", Required: true, String: true, MinLen: 2, MinLenMessage: "Name must be at least 2 characters long."},
}

// The role enum deliberately admits OWNER; assigning it is rejected later by
// the ownership invariant, not by the validator.
var inviteMemberSchema = validate.Schema{
	{Field: "email", Required: true, String: true, Pattern: emailPattern, PatternMessage: "Email is not valid."},
	{Field: "name", Required: true, String: true},
	{Field: "role", Required: true, String: true, Enum: housedomain.RoleNames()},
}

var updateMemberSchema = validate.Schema{
	{Field: "name", Required: true, String: true},
	{Field: "role", Required: true, String: true, Enum: housedomain.RoleNames()},
}

var shoppingItemSchema = validate.Schema{
	{Field: "productId", Required: true, String: true},
}

var shoppingItemUpdateSchema = validate.Schema{
	{Field: "completed", Required: true, Boolean: true},
}
