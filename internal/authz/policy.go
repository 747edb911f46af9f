package authz

// Operation names an action guarded by a role gate.
type Operation string

const (
	OpTaskCreate  Operation = "task.create"
	OpTaskList    Operation = "task.list"
	OpTaskShow    Operation = "task.show"
	OpTaskUpdate  Operation = "task.update"
	OpTaskDelete  Operation = "task.delete"
	OpTaskHistory Operation = "task.history"

	OpTeamCreate  Operation = "team.create"
	OpTeamUpdate  Operation = "team.update"
	OpTeamList    Operation = "team.list"
	OpTeamMembers Operation = "team.members"

	OpTeamMemberAdd    Operation = "team_member.add"
	OpTeamMemberRemove Operation = "team_member.remove"

	OpUserUpdate Operation = "user.update"
	OpUserList   Operation = "user.list"
)

var policy = map[Operation]RoleSet{
	OpTaskCreate:  AnyRole,
	OpTaskList:    AdminOnly,
	OpTaskShow:    AnyRole,
	OpTaskUpdate:  AnyRole,
	OpTaskDelete:  AdminOnly,
	OpTaskHistory: AnyRole,

	OpTeamCreate:  AdminOnly,
	OpTeamUpdate:  AdminOnly,
	OpTeamList:    AdminOnly,
	OpTeamMembers: AdminOnly,

	OpTeamMemberAdd:    AdminOnly,
	OpTeamMemberRemove: AdminOnly,

	OpUserUpdate: AdminOnly,
	OpUserList:   AdminOnly,
}

// AllowedRoles returns the roles declared for op. Unknown operations allow nobody.
func AllowedRoles(op Operation) RoleSet {
	return policy[op]
}

// Check applies the role gate declared for op.
func Check(p *Principal, op Operation) error {
	return Authorize(p, AllowedRoles(op))
}
