package domain

// User is an actor to whom tasks may be assigned.
type User struct {
	// ID is assigned by the store on first save.
	ID    string
	Name  string
	Email string
}

// NewUser builds an unsaved User. Name and email are stored as given.
func NewUser(name, email string) *User {
	return &User{
		Name:  name,
		Email: email,
	}
}

// Clone returns a copy of the user that shares no state with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// UserPatch is a partial update of a User. Nil fields are absent.
type UserPatch struct {
	Name  *string
	Email *string
}

// ApplyPatch merges p into u. Only present, non-blank fields replace stored values.
func (u *User) ApplyPatch(p UserPatch) {
	if present(p.Name) {
		u.Name = *p.Name
	}
	if present(p.Email) {
		u.Email = *p.Email
	}
}

// UserWithTasks is a User together with the IDs of the tasks currently assigned to it.
// TaskIDs is derived at read time from the task store and never persisted.
type UserWithTasks struct {
	User
	TaskIDs []string
}
