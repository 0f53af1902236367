package entity

import "time"

type PostComment struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Content   string    `json:"content" firestore:"content"`
	Likes     []string  `json:"likes" firestore:"likes"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

type Post struct {
	ID           string        `json:"id" firestore:"id"`
	Title        string        `json:"title" firestore:"title"`
	Content      string        `json:"content" firestore:"content"`
	AuthorID     string        `json:"author_id" firestore:"authorId"`
	Tags         []string      `json:"tags,omitempty" firestore:"tags,omitempty"`
	CodeSnippets []CodeSnippet `json:"code_snippets,omitempty" firestore:"codeSnippets,omitempty"`
	CoverImage   string        `json:"cover_image,omitempty" firestore:"coverImage,omitempty"`
	Likes        []string      `json:"likes" firestore:"likes"`
	Comments     []PostComment `json:"comments" firestore:"comments"`
	ViewCount    int64         `json:"view_count" firestore:"viewCount"`
	IsPublished  bool          `json:"is_published" firestore:"isPublished"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (p *Post) IsLikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l == userID {
			return true
		}
	}
	return false
}
