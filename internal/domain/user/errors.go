package user

import "errors"

var (
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrIdentityMissing       = errors.New("identity claims missing or invalid")
)
