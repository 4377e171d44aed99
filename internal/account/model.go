package account

// Privilege is the account's access level. Stored as an int so comparisons
// like "at least admin" stay ordered.
type Privilege int

const (
	PrivilegeUser  Privilege = 0
	PrivilegeAdmin Privilege = 1
)

func (p Privilege) String() string {
	if p == PrivilegeAdmin {
		return "admin"
	}
	return "user"
}

type Account struct {
	ID        int
	Username  string
	Password  string
	Privilege Privilege
}

// Session is the process-local authentication state. A zero Session is
// anonymous. It is passed explicitly into every gated operation.
type Session struct {
	Token string
}

func (s Session) IsAnonymous() bool {
	return s.Token == ""
}

// Anonymous returns the logged-out session.
func Anonymous() Session {
	return Session{}
}
