package types

// Campaign member roles, in descending privilege
const (
	RoleOwner  = "owner"
	RoleCoGM   = "co-gm"
	RoleViewer = "viewer"
)

// Directory-level account roles (unrelated to campaign roles)
const (
	AccountRoleGM     = "gm"
	AccountRolePlayer = "player"
)

// Join request status values
const (
	JoinRequestPending  = "pending"
	JoinRequestApproved = "approved"
	JoinRequestRejected = "rejected"
)

// Join request review actions
const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"
)

// Job status values
const (
	JobOpen     = "open"
	JobPlayed   = "played"
	JobArchived = "archived"
)

var ValidRoles = []string{RoleOwner, RoleCoGM, RoleViewer}

// Roles an owner may assign through member management. Owner is excluded:
// ownership moves only through a dedicated transfer flow.
var AssignableRoles = []string{RoleCoGM, RoleViewer}

var ValidJobStatuses = []string{JobOpen, JobPlayed, JobArchived}

// roleRank orders roles for minimum-role checks.
var roleRank = map[string]int{
	RoleViewer: 1,
	RoleCoGM:   2,
	RoleOwner:  3,
}

func IsValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

func IsAssignableRole(role string) bool {
	for _, r := range AssignableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleAtLeast reports whether role meets the required minimum role.
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min] && roleRank[role] > 0
}

func IsValidJobStatus(status string) bool {
	for _, s := range ValidJobStatuses {
		if s == status {
			return true
		}
	}
	return false
}
