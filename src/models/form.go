package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Form is the owner-scoped document. Content holds the serialized element
// sequence as the builder frontend sends it; the backend never validates
// element structure beyond the id field.
type Form struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string" example:"507f1f77bcf86cd799439011"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId" swaggertype:"string"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Content     string             `bson:"content" json:"content"`
	Published   bool               `bson:"published" json:"published"`
	ShareURL    string             `bson:"shareUrl" json:"shareUrl"`
	Visits      int64              `bson:"visits" json:"visits"`
	Submissions int64              `bson:"submissions" json:"submissions"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// FormWithSubmissions is the owner view of a form joined with every
// submission recorded against it.
type FormWithSubmissions struct {
	Form
	FormSubmissions []FormSubmission `json:"formSubmissions"`
}

// FormStats are the aggregate numbers across all of one owner's forms.
type FormStats struct {
	Visits          int64   `json:"visits"`
	Submissions     int64   `json:"submissions"`
	SubmissionsRate float64 `json:"submissionsRate"`
	BounceRate      float64 `json:"bounceRate"`
}
