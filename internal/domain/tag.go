package domain

// Tag is a label that can be attached to any number of posts.
type Tag struct {
	ID   int64
	Name string
}

// TagPost is the association between a tag and a post.
// The pair is its only identity.
type TagPost struct {
	TagID  int64
	PostID int64
}
