package models

const (
	// RoleOrganizer may create chores in addition to everything members can do.
	RoleOrganizer = "organizer"
	// RoleMember is the default, unprivileged role.
	RoleMember = "member"
)
