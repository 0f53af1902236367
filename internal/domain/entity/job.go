package entity

import "time"

const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
)

type JobSalary struct {
	Min      float64 `json:"min,omitempty" firestore:"min,omitempty"`
	Max      float64 `json:"max,omitempty" firestore:"max,omitempty"`
	Currency string  `json:"currency" firestore:"currency"`
}

type Job struct {
	ID           string     `json:"id" firestore:"id"`
	Title        string     `json:"title" firestore:"title"`
	Company      string     `json:"company" firestore:"company"`
	Location     string     `json:"location" firestore:"location"`
	Remote       bool       `json:"remote" firestore:"remote"`
	Type         string     `json:"type" firestore:"type"` // "full-time", "part-time", "contract", "internship"
	Salary       *JobSalary `json:"salary,omitempty" firestore:"salary,omitempty"`
	Description  string     `json:"description" firestore:"description"`
	Requirements []string   `json:"requirements,omitempty" firestore:"requirements,omitempty"`
	Skills       []string   `json:"skills,omitempty" firestore:"skills,omitempty"`
	PostedBy     string     `json:"posted_by" firestore:"postedBy"`
	IsActive     bool       `json:"is_active" firestore:"isActive"`
	ExpiryDate   time.Time  `json:"expiry_date,omitempty" firestore:"expiryDate,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
