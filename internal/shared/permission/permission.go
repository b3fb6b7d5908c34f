package permission

import (
	"foodgram-backend/internal/shared/actor"
	"foodgram-backend/internal/shared/apperror"
)

// Action is an operation guarded by the capability table.
type Action string

const (
	ActionRead              Action = "read"
	ActionRegister          Action = "register"
	ActionReadMe            Action = "read_me"
	ActionManageReference   Action = "manage_reference"
	ActionCreateRecipe      Action = "create_recipe"
	ActionUpdateRecipe      Action = "update_recipe"
	ActionDeleteRecipe      Action = "delete_recipe"
	ActionToggleFavorite    Action = "toggle_favorite"
	ActionToggleCart        Action = "toggle_cart"
	ActionDownloadCart      Action = "download_cart"
	ActionToggleSubscribe   Action = "toggle_subscribe"
	ActionListSubscriptions Action = "list_subscriptions"
	ActionDeleteUser        Action = "delete_user"
)

// Actions lists every guarded action.
var Actions = []Action{
	ActionRead, ActionRegister, ActionReadMe, ActionManageReference,
	ActionCreateRecipe, ActionUpdateRecipe, ActionDeleteRecipe,
	ActionToggleFavorite, ActionToggleCart, ActionDownloadCart,
	ActionToggleSubscribe, ActionListSubscriptions, ActionDeleteUser,
}

// Principal is the role class of the caller.
type Principal int

const (
	Anonymous Principal = iota
	User
	Admin
)

// Ownership describes the caller's relation to the target object.
type Ownership int

const (
	// NoTarget: the action is not about an owned object.
	NoTarget Ownership = iota
	Owner
	NonOwner
)

// Grant is one row of the capability table.
type Grant struct {
	Action    Action
	Ownership Ownership
	Principal Principal
}

var (
	ErrUnauthorized = apperror.ErrUnauthorized
	ErrForbidden    = apperror.ErrForbidden
)

// Table holds every allowed (action, ownership, principal) triple.
// Anything absent is denied.
var Table = map[Grant]bool{}

func init() {
	allow := func(a Action, o Ownership, ps ...Principal) {
		for _, p := range ps {
			Table[Grant{Action: a, Ownership: o, Principal: p}] = true
		}
	}

	allow(ActionRead, NoTarget, Anonymous, User, Admin)
	allow(ActionRead, Owner, User, Admin)
	allow(ActionRead, NonOwner, Anonymous, User, Admin)
	allow(ActionRegister, NoTarget, Anonymous, User, Admin)

	allow(ActionReadMe, NoTarget, User, Admin)
	allow(ActionCreateRecipe, NoTarget, User, Admin)
	allow(ActionDownloadCart, NoTarget, User, Admin)
	allow(ActionListSubscriptions, NoTarget, User, Admin)

	// own recipes may be favorited and carted
	allow(ActionToggleFavorite, Owner, User, Admin)
	allow(ActionToggleFavorite, NonOwner, User, Admin)
	allow(ActionToggleCart, Owner, User, Admin)
	allow(ActionToggleCart, NonOwner, User, Admin)
	// self-subscription is an InvalidState, not a permission failure
	allow(ActionToggleSubscribe, Owner, User, Admin)
	allow(ActionToggleSubscribe, NonOwner, User, Admin)

	allow(ActionUpdateRecipe, Owner, User, Admin)
	allow(ActionUpdateRecipe, NonOwner, Admin)
	allow(ActionDeleteRecipe, Owner, User, Admin)
	allow(ActionDeleteRecipe, NonOwner, Admin)
	allow(ActionDeleteUser, Owner, User, Admin)
	allow(ActionDeleteUser, NonOwner, Admin)

	allow(ActionManageReference, NoTarget, Admin)
}

// PrincipalOf maps an actor to its role class.
func PrincipalOf(a actor.Actor) Principal {
	switch {
	case !a.IsAuthenticated():
		return Anonymous
	case a.IsAdmin():
		return Admin
	default:
		return User
	}
}

// OwnershipOf computes the caller's ownership of an object owned by ownerID.
func OwnershipOf(a actor.Actor, ownerID int64) Ownership {
	if a.Owns(ownerID) {
		return Owner
	}
	return NonOwner
}

// Allowed looks up the table.
func Allowed(action Action, own Ownership, a actor.Actor) bool {
	return Table[Grant{Action: action, Ownership: own, Principal: PrincipalOf(a)}]
}

// Check returns nil when allowed. A denied anonymous caller gets
// ErrUnauthorized, a denied authenticated caller gets ErrForbidden.
func Check(a actor.Actor, action Action, own Ownership) error {
	if Allowed(action, own, a) {
		return nil
	}
	if !a.IsAuthenticated() {
		return ErrUnauthorized
	}
	return ErrForbidden
}

// CheckOwned is Check for an object owned by ownerID.
func CheckOwned(a actor.Actor, action Action, ownerID int64) error {
	return Check(a, action, OwnershipOf(a, ownerID))
}
