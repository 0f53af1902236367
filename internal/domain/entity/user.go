package entity

import "time"

type User struct {
	ID        string   `json:"id" firestore:"id"`
	Email     string   `json:"email" firestore:"email"`
	Username  string   `json:"username" firestore:"username"`
	Avatar    string   `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	Bio       string   `json:"bio,omitempty" firestore:"bio,omitempty"`
	Skills    []string `json:"skills,omitempty" firestore:"skills,omitempty"`
	GithubURL string   `json:"github_url,omitempty" firestore:"githubURL,omitempty"`
	Website   string   `json:"website,omitempty" firestore:"website,omitempty"`
	Location  string   `json:"location,omitempty" firestore:"location,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// PublicProfile strips fields that should not leak to other users.
func (u *User) PublicProfile() *User {
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		Skills:    u.Skills,
		GithubURL: u.GithubURL,
		Website:   u.Website,
		Location:  u.Location,
		CreatedAt: u.CreatedAt,
	}
}
