package domain

// User is an author of posts.
// Posts is populated by reads that join the posts table and is never nil
// on a value returned from the store.
type User struct {
	ID    int64
	Name  string
	Email string
	Posts []*Post
}

// Ref returns a reference to the user. It reports Loaded once the user has
// been persisted.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email, loaded: u.ID != 0}
}

// UserRef identifies the owner of a post.
//
// A reference built with RefUser carries only the id and is what the
// transfer layer produces from a bare userId. References returned from the
// store also carry the owner's name and email and report Loaded.
type UserRef struct {
	ID    int64
	Name  string
	Email string

	loaded bool
}

// RefUser returns an id-only reference.
func RefUser(id int64) UserRef {
	return UserRef{ID: id}
}

// LoadedUserRef returns a reference carrying the owner's profile fields.
func LoadedUserRef(id int64, name, email string) UserRef {
	return UserRef{ID: id, Name: name, Email: email, loaded: true}
}

// Loaded reports whether Name and Email were read from the store.
func (r UserRef) Loaded() bool {
	return r.loaded
}

