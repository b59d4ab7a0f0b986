package models

import "time"

type Blog struct {
	ID          int64  `json:"blogId" db:"blog_id"`
	AuthorID    int64  `json:"-" db:"author_id"`
	Title       string `json:"title" db:"title"`
	Subtitle    string `json:"subtitle" db:"subtitle"`
	DisplayName string `json:"displayName" db:"display_name"`
}

// BlogFeed is one entry of the public home feed: a blog together with its
// published articles, article content truncated for preview.
type BlogFeed struct {
	BlogID      int64         `json:"blogId"`
	Title       string        `json:"title"`
	Subtitle    string        `json:"subtitle"`
	DisplayName string        `json:"displayName"`
	Articles    []FeedArticle `json:"articles"`
}

type FeedArticle struct {
	ID        int64     `json:"articleId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Article struct {
	ID        int64     `json:"articleId" db:"article_id"`
	BlogID    int64     `json:"-" db:"blog_id"`
	Title     string    `json:"title" db:"title"`
	Subtitle  string    `json:"subtitle" db:"subtitle"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Computed from interaction rows, never stored.
	Likes int64 `json:"likes" db:"likes"`
	Views int64 `json:"views" db:"views"`
}

// ArticleSummary is the dashboard projection of an article: no body, but
// aggregate like/view counts.
type ArticleSummary struct {
	ID        int64     `json:"articleId" db:"article_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Likes     int64     `json:"likes" db:"likes"`
	Views     int64     `json:"views" db:"views"`
}

type Draft struct {
	ID        int64     `json:"draftId" db:"draft_id"`
	BlogID    int64     `json:"-" db:"blog_id"`
	Title     string    `json:"title" db:"title"`
	Subtitle  string    `json:"subtitle" db:"subtitle"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type DraftSummary struct {
	ID        int64     `json:"draftId" db:"draft_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Comment struct {
	ID        int64     `json:"commentId" db:"comment_id"`
	ArticleID int64     `json:"-" db:"article_id"`
	UserID    int64     `json:"-" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Interaction is one user's engagement state toward one article. An absent
// row is equivalent to the zero value.
type Interaction struct {
	ArticleID int64     `json:"-" db:"article_id"`
	UserID    int64     `json:"-" db:"user_id"`
	Liked     bool      `json:"liked" db:"liked"`
	Viewed    bool      `json:"viewed" db:"viewed"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}
