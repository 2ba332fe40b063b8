package house

import "errors"

var (
	ErrHouseNotFound      = errors.New("house not found")
	ErrNotMember          = errors.New("not a member of this house")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNameTaken          = errors.New("house name already exists")
	ErrMemberNotFound     = errors.New("member not found")
	ErrAlreadyMember      = errors.New("user is already a member")
	ErrOwnerImmutable     = errors.New("the owner membership cannot be changed")
	ErrOwnerNotAssignable = errors.New("the owner role cannot be assigned")
)
