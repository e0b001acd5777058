package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_LikedBy(t *testing.T) {
	p := Post{Likes: []string{"u1", "u2"}}

	assert.True(t, p.LikedBy("u1"))
	assert.True(t, p.LikedBy("u2"))
	assert.False(t, p.LikedBy("u3"))

	empty := Post{}
	assert.False(t, empty.LikedBy("u1"))
}

func TestPost_Clone_DoesNotAlias(t *testing.T) {
	now := time.Now()
	p := Post{
		ID:       "p1",
		Likes:    []string{"u1"},
		Comments: []Comment{{ID: "c1", Text: "hi", CreatedAt: now}},
	}

	c := p.Clone()
	c.Likes[0] = "other"
	c.Comments[0].Text = "changed"

	require.Equal(t, "u1", p.Likes[0])
	require.Equal(t, "hi", p.Comments[0].Text)
}

func TestClonePosts(t *testing.T) {
	require.Nil(t, ClonePosts(nil))

	posts := []Post{{ID: "p1", Likes: []string{"u1"}}, {ID: "p2"}}
	cloned := ClonePosts(posts)

	require.Len(t, cloned, 2)
	cloned[0].Likes[0] = "mutated"
	assert.Equal(t, "u1", posts[0].Likes[0])
}

func TestNewRegisterRequest_FixedShape(t *testing.T) {
	r := NewRegisterRequest("a@b.com", "secret1")

	assert.Equal(t, "a@b.com", r.Email)
	assert.Equal(t, "secret1", r.Password)
	assert.True(t, r.IsActive)
	assert.False(t, r.IsSuperuser)
	assert.False(t, r.IsVerified)
}
