package entities

// UserGroup is the back-office group of the user performing an action.
type UserGroup string

const (
	UserGroupAdministrator UserGroup = "administrator"
	UserGroupManager       UserGroup = "manager"
	UserGroupEmployee      UserGroup = "employee"
	UserGroupSystem        UserGroup = "system"
)

func (g UserGroup) Valid() bool {
	switch g {
	case UserGroupAdministrator, UserGroupManager, UserGroupEmployee, UserGroupSystem:
		return true
	}
	return false
}

// Privileged reports whether the group may register financial corrections
// such as deposit refunds.
func (g UserGroup) Privileged() bool {
	return g == UserGroupAdministrator || g == UserGroupManager
}

// Actor is the identity a transition is performed on behalf of.
type Actor struct {
	ID    string    `json:"id"`
	Group UserGroup `json:"group"`
}

// SystemActor is used by scheduled jobs.
var SystemActor = Actor{ID: "system", Group: UserGroupSystem}
