package models

import "time"

// Comment is a single comment on a post. Comments are kept in append order,
// which is chronological for a single client.
type Comment struct {
	// ID is the comment's UUID.
	ID string `json:"id"`

	// AuthorID and AuthorEmail identify the commenting user.
	AuthorID    string `json:"author_id"`
	AuthorEmail string `json:"author_email"`

	// Text is the comment body, non-empty after trimming.
	Text string `json:"text"`

	CreatedAt time.Time `json:"created_at"`
}

// Post is one feed entry. Likes holds the ids of users who liked the post,
// without duplicates; membership in Likes is the only has-liked state.
type Post struct {
	// ID is the post's UUID.
	ID string `json:"id"`

	AuthorID    string `json:"author_id"`
	AuthorEmail string `json:"author_email"`

	// ImageURL is either a remote URL or a data URI.
	ImageURL string `json:"image_url"`

	Caption string `json:"caption"`

	CreatedAt time.Time `json:"created_at"`

	Likes    []string  `json:"likes"`
	Comments []Comment `json:"comments"`
}

// LikedBy reports whether userID is present in the post's like set.
func (p Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the post. Likes and Comments are copied so
// mutating the clone never aliases the original.
func (p Post) Clone() Post {
	out := p
	if p.Likes != nil {
		out.Likes = append([]string(nil), p.Likes...)
	}
	if p.Comments != nil {
		out.Comments = append([]Comment(nil), p.Comments...)
	}
	return out
}

// ClonePosts deep-copies a feed slice.
func ClonePosts(posts []Post) []Post {
	if posts == nil {
		return nil
	}
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}
