package model

// Role is the caller role resolved by the upstream auth service.
type Role string

const (
	RoleOwner     Role = "owner"
	RoleTenant    Role = "tenant"
	RoleAnonymous Role = "anonymous"
)
