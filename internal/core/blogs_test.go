package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveBlogInfoCreatesThenUpdates(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice := registerUser(t, c, "alice")

	created, err := c.SaveBlogInfo(ctx, alice.ID, "First Title", "first subtitle", "Alice")
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	updated, err := c.SaveBlogInfo(ctx, alice.ID, "Second Title", "second subtitle", "Alice W.")
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Second Title", updated.Title)

	blog, err := c.BlogByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Second Title", blog.Title)
	require.Equal(t, "Alice W.", blog.DisplayName)
}

func TestSaveBlogInfoRequiresAuthorRecord(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	registerUser(t, c, "alice")
	bob := registerUser(t, c, "bob")

	_, err := c.SaveBlogInfo(ctx, bob.ID, "title", "sub", "Bob")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAtMostOneBlogPerAuthor(t *testing.T) {
	c := newTestCore(t)

	_, blog := newAuthorWithBlog(t, c, "alice")

	// The store itself refuses a second blog for the same author, so the
	// invariant holds even if a racing request slips past SaveBlogInfo's
	// read-then-insert.
	_, err := c.db.Exec(
		`INSERT INTO blogs (author_id, title, subtitle, display_name) VALUES (?, ?, ?, ?)`,
		blog.AuthorID, "second", "sub", "Alice",
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "UNIQUE constraint failed: blogs.author_id")
}

func TestBlogsWithArticlesSkipsEmptyBlogs(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")
	newAuthorWithBlog(t, c, "bob")

	publishArticle(t, c, alice, blog, "Only Article", "short content")

	feed, err := c.BlogsWithArticles(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, blog.ID, feed[0].BlogID)
}

func TestBlogsWithArticlesTruncatesPreviews(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")

	longContent := strings.Repeat("word ", 20)
	publishArticle(t, c, alice, blog, "Long One", strings.TrimSpace(longContent))
	publishArticle(t, c, alice, blog, "Short One", "just a few words")

	feed, err := c.BlogsWithArticles(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Len(t, feed[0].Articles, 2)

	for _, article := range feed[0].Articles {
		switch article.Title {
		case "Long One":
			require.True(t, strings.HasSuffix(article.Content, "..."))
			require.Len(t, strings.Fields(strings.TrimSuffix(article.Content, "...")), previewWordCount)
		case "Short One":
			require.Equal(t, "just a few words", article.Content)
		}
	}
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		limit   int
		want    string
	}{
		{"empty", "", 3, ""},
		{"under limit", "one two", 3, "one two"},
		{"exactly limit", "one two three", 3, "one two three"},
		{"over limit", "one two three four", 3, "one two three..."},
		{"collapses whitespace on cut", "one  two\tthree four", 3, "one two three..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, truncateWords(tt.content, tt.limit))
		})
	}
}
