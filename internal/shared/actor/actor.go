package actor

// Role values stored in users.role and carried in the access token.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Actor is the caller of a service operation. The zero value is an anonymous caller.
type Actor struct {
	UserID      int64
	Role        string
	IsSuperuser bool
}

// Anonymous returns the unauthenticated caller.
func Anonymous() Actor { return Actor{} }

// New builds an authenticated actor.
func New(userID int64, role string) Actor {
	if role == "" {
		role = RoleUser
	}
	return Actor{UserID: userID, Role: role}
}

// WithSuperuser returns a copy of a carrying the superuser flag.
func (a Actor) WithSuperuser(superuser bool) Actor {
	a.IsSuperuser = superuser
	return a
}

func (a Actor) IsAuthenticated() bool { return a.UserID > 0 }

func (a Actor) IsAdmin() bool {
	return a.IsAuthenticated() && (a.Role == RoleAdmin || a.IsSuperuser)
}

// Owns reports whether the actor is the owner identified by ownerID.
func (a Actor) Owns(ownerID int64) bool {
	return a.IsAuthenticated() && a.UserID == ownerID
}
