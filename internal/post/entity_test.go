// AngelaMos | 2026
// entity_test.go

package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"basic title", "Hello World!", "hello-world"},
		{"already a slug", "hello-world", "hello-world"},
		{"punctuation stripped", "Go 1.25: What's New?", "go-125-whats-new"},
		{"whitespace runs collapse", "too   many    spaces", "too-many-spaces"},
		{"leading and trailing space", "  padded title  ", "padded-title"},
		// A token stripped between two spaces leaves a hyphen run. Runs are
		// kept as-is, matching the publish history of existing slugs.
		{"unicode stripped", "Cafés & Crème Brûlée", "cafs--crme-brle"},
		{"numbers kept", "Top 10 Posts of 2026", "top-10-posts-of-2026"},
		{"empty title", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.title))
		})
	}
}

func TestGenerateSlugIdempotent(t *testing.T) {
	titles := []string{"Hello World!", "Go 1.25: What's New?", "plain"}

	for _, title := range titles {
		once := GenerateSlug(title)
		assert.Equal(t, once, GenerateSlug(once))
	}
}

func TestPostCanModify(t *testing.T) {
	p := &Post{AuthorID: "alice"}

	assert.True(t, p.CanModify("alice", false), "author may modify")
	assert.True(t, p.CanModify("bob", true), "admin may modify any post")
	assert.True(t, p.CanModify("alice", true))
	assert.False(t, p.CanModify("bob", false), "non-admin non-author may not")
	assert.False(t, p.CanModify("", false))
}
