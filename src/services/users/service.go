package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"formforge-backend/src/database"
	"formforge-backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Register hashes the password and persists a new user. Emails are stored
// lowercased; the unique index backstops the existence check under
// concurrent registrations.
func Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(email)

	count, err := database.UserCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  string(hash),
		Name:      name,
		CreatedAt: time.Now(),
	}

	if _, err := database.UserCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

// Authenticate resolves the user by email and compares the password against
// the stored hash.
func Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := database.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetByID looks a user up by the identity resolved from a session token.
// A stale identity (user deleted after token issuance) is a not-found.
func GetByID(ctx context.Context, userID string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var user models.User
	err = database.UserCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// Service exposes the package operations as methods so callers can hold
// them behind an interface.
type Service struct{}

func (Service) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	return Register(ctx, email, password, name)
}

func (Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return Authenticate(ctx, email, password)
}

func (Service) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return GetByID(ctx, userID)
}
