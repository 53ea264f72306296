package domain

// Post is a piece of content owned by exactly one user.
//
// Tags is nil on partially populated posts, such as those returned when
// listing the posts of a tag. Full reads always set it, empty when the post
// is untagged.
type Post struct {
	ID      int64
	Title   string
	Content string
	Owner   UserRef
	Tags    []*Tag
}

