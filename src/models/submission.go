package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FormSubmission is append-only: created by the public submit path, read only
// through the owning form's submissions listing.
type FormSubmission struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FormID    primitive.ObjectID `bson:"formId" json:"formId"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
