package forms

import (
	"context"
	"errors"
	"time"

	"formforge-backend/src/database"
	"formforge-backend/src/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrFormNotFound also covers ownership mismatches: a form belonging to a
// different owner must be indistinguishable from a nonexistent one.
var ErrFormNotFound = errors.New("form not found")

// ownerFilter pairs the record id with the owner on every lookup, so the
// ownership check happens inside the query itself.
func ownerFilter(userID, formID primitive.ObjectID) bson.M {
	return bson.M{"_id": formID, "userId": userID}
}

// GetStats sums visits and submissions across the owner's forms and derives
// the rates. Zero visits means a zero submission rate, not a division error.
func GetStats(ctx context.Context, userID primitive.ObjectID) (*models.FormStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "visits", Value: bson.D{{Key: "$sum", Value: "$visits"}}},
			{Key: "submissions", Value: bson.D{{Key: "$sum", Value: "$submissions"}}},
		}}},
	}

	cursor, err := database.FormCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var totals struct {
		Visits      int64 `bson:"visits"`
		Submissions int64 `bson:"submissions"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&totals); err != nil {
			return nil, err
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return computeStats(totals.Visits, totals.Submissions), nil
}

func computeStats(visits, submissions int64) *models.FormStats {
	var submissionsRate float64
	if visits > 0 {
		submissionsRate = float64(submissions) / float64(visits) * 100
	}
	return &models.FormStats{
		Visits:          visits,
		Submissions:     submissions,
		SubmissionsRate: submissionsRate,
		BounceRate:      100 - submissionsRate,
	}
}

// Create inserts a new unpublished form with zeroed counters and a fresh
// share link.
func Create(ctx context.Context, userID primitive.ObjectID, name, description string) (primitive.ObjectID, error) {
	form := models.Form{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Content:     "",
		Published:   false,
		ShareURL:    uuid.NewString(),
		Visits:      0,
		Submissions: 0,
		CreatedAt:   time.Now(),
	}

	if _, err := database.FormCollection.InsertOne(ctx, form); err != nil {
		return primitive.NilObjectID, err
	}

	return form.ID, nil
}

// GetAll returns the owner's forms, newest first.
func GetAll(ctx context.Context, userID primitive.ObjectID) ([]models.Form, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := database.FormCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var forms []models.Form
	if err = cursor.All(ctx, &forms); err != nil {
		return nil, err
	}
	if forms == nil {
		forms = []models.Form{}
	}

	return forms, nil
}

// GetByID returns the form when the caller owns it.
func GetByID(ctx context.Context, userID, formID primitive.ObjectID) (*models.Form, error) {
	var form models.Form
	err := database.FormCollection.FindOne(ctx, ownerFilter(userID, formID)).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	return &form, nil
}

// UpdateContent overwrites the content blob wholesale. No merge.
func UpdateContent(ctx context.Context, userID, formID primitive.ObjectID, content string) (*models.Form, error) {
	return updateOwned(ctx, userID, formID, bson.M{"$set": bson.M{"content": content}})
}

// Publish flips the published flag. There is no unpublish.
func Publish(ctx context.Context, userID, formID primitive.ObjectID) (*models.Form, error) {
	return updateOwned(ctx, userID, formID, bson.M{"$set": bson.M{"published": true}})
}

func updateOwned(ctx context.Context, userID, formID primitive.ObjectID, update bson.M) (*models.Form, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var form models.Form
	err := database.FormCollection.FindOneAndUpdate(ctx, ownerFilter(userID, formID), update, opts).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	return &form, nil
}

// GetContentByShareURL counts a visit and returns the content blob in one
// atomic update. Keyed by the share link alone: unpublished forms stay
// reachable here so owners can preview a draft through its link.
func GetContentByShareURL(ctx context.Context, shareURL string) (string, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"content": 1})

	var form models.Form
	err := database.FormCollection.FindOneAndUpdate(ctx,
		bson.M{"shareUrl": shareURL},
		bson.M{"$inc": bson.M{"visits": 1}},
		opts,
	).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrFormNotFound
		}
		return "", err
	}

	return form.Content, nil
}

// Submit records a public submission against a published form. The counter
// increment and the submission insert run in one transaction; a miss on the
// published filter leaves both untouched.
func Submit(ctx context.Context, formURL, content string) (*models.Form, error) {
	result, err := database.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		var form models.Form
		err := database.FormCollection.FindOneAndUpdate(sc,
			bson.M{"shareUrl": formURL, "published": true},
			bson.M{"$inc": bson.M{"submissions": 1}},
			opts,
		).Decode(&form)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrFormNotFound
			}
			return nil, err
		}

		submission := models.FormSubmission{
			ID:        primitive.NewObjectID(),
			FormID:    form.ID,
			Content:   content,
			CreatedAt: time.Now(),
		}
		if _, err := database.SubmissionCollection.InsertOne(sc, submission); err != nil {
			return nil, err
		}

		return &form, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*models.Form), nil
}

// GetSubmissions returns the owned form together with every submission
// recorded against it.
func GetSubmissions(ctx context.Context, userID, formID primitive.ObjectID) (*models.FormWithSubmissions, error) {
	form, err := GetByID(ctx, userID, formID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := database.SubmissionCollection.Find(ctx, bson.M{"formId": form.ID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var submissions []models.FormSubmission
	if err = cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []models.FormSubmission{}
	}

	return &models.FormWithSubmissions{
		Form:            *form,
		FormSubmissions: submissions,
	}, nil
}

// Delete hard-deletes the owned form and returns its prior state.
func Delete(ctx context.Context, userID, formID primitive.ObjectID) (*models.Form, error) {
	var form models.Form
	err := database.FormCollection.FindOneAndDelete(ctx, ownerFilter(userID, formID)).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	return &form, nil
}

// RemoveElement drops one element from the content sequence and writes the
// result back. Read-modify-write: concurrent element deletions on the same
// form can overwrite each other's result (last write wins).
func RemoveElement(ctx context.Context, userID, formID primitive.ObjectID, elementID string) (*models.Form, error) {
	form, err := GetByID(ctx, userID, formID)
	if err != nil {
		return nil, err
	}

	elements, err := models.ParseElements(form.Content)
	if err != nil {
		return nil, err
	}

	content, err := elements.Remove(elementID).Serialize()
	if err != nil {
		return nil, err
	}

	return UpdateContent(ctx, userID, formID, content)
}

// Service exposes the package operations as methods so callers can hold
// them behind an interface.
type Service struct{}

func (Service) GetStats(ctx context.Context, userID primitive.ObjectID) (*models.FormStats, error) {
	return GetStats(ctx, userID)
}

func (Service) Create(ctx context.Context, userID primitive.ObjectID, name, description string) (primitive.ObjectID, error) {
	return Create(ctx, userID, name, description)
}

func (Service) GetAll(ctx context.Context, userID primitive.ObjectID) ([]models.Form, error) {
	return GetAll(ctx, userID)
}

func (Service) GetByID(ctx context.Context, userID, formID primitive.ObjectID) (*models.Form, error) {
	return GetByID(ctx, userID, formID)
}

func (Service) UpdateContent(ctx context.Context, userID, formID primitive.ObjectID, content string) (*models.Form, error) {
	return UpdateContent(ctx, userID, formID, content)
}

func (Service) Publish(ctx context.Context, userID, formID primitive.ObjectID) (*models.Form, error) {
	return Publish(ctx, userID, formID)
}

func (Service) GetContentByShareURL(ctx context.Context, shareURL string) (string, error) {
	return GetContentByShareURL(ctx, shareURL)
}

func (Service) Submit(ctx context.Context, formURL, content string) (*models.Form, error) {
	return Submit(ctx, formURL, content)
}

func (Service) GetSubmissions(ctx context.Context, userID, formID primitive.ObjectID) (*models.FormWithSubmissions, error) {
	return GetSubmissions(ctx, userID, formID)
}

func (Service) Delete(ctx context.Context, userID, formID primitive.ObjectID) (*models.Form, error) {
	return Delete(ctx, userID, formID)
}

func (Service) RemoveElement(ctx context.Context, userID, formID primitive.ObjectID, elementID string) (*models.Form, error) {
	return RemoveElement(ctx, userID, formID, elementID)
}
