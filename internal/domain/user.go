package domain

type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// Allows reports whether r satisfies the capability need.
// admin ⊇ user ⊇ anonymous.
func (r Role) Allows(need Role) bool {
	rank := func(x Role) int {
		switch x {
		case RoleAdmin:
			return 2
		case RoleUser:
			return 1
		default:
			return 0
		}
	}
	return rank(r) >= rank(need)
}

type User struct {
	ID        string `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	Name      string `db:"name" json:"name"`
	Hash      string `db:"password_hash" json:"-"`
	Role      Role   `db:"role" json:"role"`
	CreatedAt string `db:"created_at" json:"createdAt,omitempty"`
}

// Identity is what the session guard resolves for a request.
type Identity struct {
	Role   Role   `json:"role"`
	UserID string `json:"userId,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

func IdentityOf(u *User) Identity {
	if u == nil {
		return Identity{Role: RoleAnonymous}
	}
	return Identity{Role: u.Role, UserID: u.ID, Name: u.Name, Email: u.Email}
}
