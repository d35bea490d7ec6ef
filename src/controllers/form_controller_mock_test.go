package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"formforge-backend/src/controllers"
	"formforge-backend/src/middleware"
	"formforge-backend/src/models"
	formSvc "formforge-backend/src/services/forms"
	"formforge-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockFormService is a mock implementation of the forms service
type MockFormService struct {
	mock.Mock
}

func (m *MockFormService) GetStats(ctx context.Context, userID primitive.ObjectID) (*models.FormStats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FormStats), args.Error(1)
}

func (m *MockFormService) Create(ctx context.Context, userID primitive.ObjectID, name, description string) (primitive.ObjectID, error) {
	args := m.Called(userID, name, description)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockFormService) GetAll(ctx context.Context, userID primitive.ObjectID) ([]models.Form, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Form), args.Error(1)
}

func (m *MockFormService) GetByID(ctx context.Context, userID, formID primitive.ObjectID) (*models.Form, error) {
	args := m.Called(userID, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

func (m *MockFormService) UpdateContent(ctx context.Context, userID, formID primitive.ObjectID, content string) (*models.Form, error) {
	args := m.Called(userID, formID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

func (m *MockFormService) Publish(ctx context.Context, userID, formID primitive.ObjectID) (*models.Form, error) {
	args := m.Called(userID, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

func (m *MockFormService) GetContentByShareURL(ctx context.Context, shareURL string) (string, error) {
	args := m.Called(shareURL)
	return args.String(0), args.Error(1)
}

func (m *MockFormService) Submit(ctx context.Context, formURL, content string) (*models.Form, error) {
	args := m.Called(formURL, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

func (m *MockFormService) GetSubmissions(ctx context.Context, userID, formID primitive.ObjectID) (*models.FormWithSubmissions, error) {
	args := m.Called(userID, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FormWithSubmissions), args.Error(1)
}

func (m *MockFormService) Delete(ctx context.Context, userID, formID primitive.ObjectID) (*models.Form, error) {
	args := m.Called(userID, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

func (m *MockFormService) RemoveElement(ctx context.Context, userID, formID primitive.ObjectID, elementID string) (*models.Form, error) {
	args := m.Called(userID, formID, elementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

// newMockedFormApp wires the form endpoints against a mocked forms service
// behind the real auth gate.
func newMockedFormApp(svc controllers.FormService) (*fiber.App, *utils.TokenService) {
	tokens := utils.NewTokenService("test-secret")
	fc := controllers.NewFormControllerWith(svc)
	authRequired := middleware.AuthRequired(tokens)

	app := fiber.New()
	app.Post("/api/forms/submit", fc.SubmitForm)
	app.Get("/api/forms/:id", authRequired, fc.GetFormByID)
	app.Delete("/api/forms/:id", authRequired, fc.DeleteForm)
	return app, tokens
}

func cookieForUser(t *testing.T, tokens *utils.TokenService, userID primitive.ObjectID) *http.Cookie {
	t.Helper()
	token, err := tokens.Generate(userID.Hex(), "a@x.com")
	require.NoError(t, err)
	return &http.Cookie{Name: "token", Value: token}
}

// A share link whose form is not published behaves like a missing form: the
// caller sees 404 and no submission or counter change happens.
func TestSubmitUnpublishedFormIsNotFound(t *testing.T) {
	mockService := new(MockFormService)
	mockService.On("Submit", "hidden-form", `[{"id":"f1","value":"x"}]`).
		Return(nil, formSvc.ErrFormNotFound)

	app, _ := newMockedFormApp(mockService)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/forms/submit",
		`{"formUrl":"hidden-form","content":"[{\"id\":\"f1\",\"value\":\"x\"}]"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, "Form not found", body["message"])
	assert.NotContains(t, body, "submissions")

	mockService.AssertExpectations(t)
	mockService.AssertNumberOfCalls(t, "Submit", 1)
}

func TestSubmitPublishedFormReturnsUpdatedCounters(t *testing.T) {
	mockService := new(MockFormService)
	mockService.On("Submit", "live-form", "[]").
		Return(&models.Form{
			ID:          primitive.NewObjectID(),
			Published:   true,
			ShareURL:    "live-form",
			Submissions: 6,
		}, nil)

	app, _ := newMockedFormApp(mockService)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/forms/submit",
		`{"formUrl":"live-form","content":"[]"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, float64(6), body["submissions"])

	mockService.AssertExpectations(t)
}

// Lookups are scoped to the token's owner: a real form id paired with a
// different user's session yields 404, never the record.
func TestFormLookupScopedToTokenOwner(t *testing.T) {
	formID := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	mockService := new(MockFormService)
	mockService.On("GetByID", stranger, formID).Return(nil, formSvc.ErrFormNotFound)

	app, tokens := newMockedFormApp(mockService)

	req := jsonRequest(http.MethodGet, "/api/forms/"+formID.Hex(), "")
	req.AddCookie(cookieForUser(t, tokens, stranger))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, "Form not found", body["message"])
	assert.NotContains(t, body, "name")
	assert.NotContains(t, body, "content")

	mockService.AssertExpectations(t)
}

func TestDeleteScopedToTokenOwner(t *testing.T) {
	formID := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	mockService := new(MockFormService)
	mockService.On("Delete", stranger, formID).Return(nil, formSvc.ErrFormNotFound)

	app, tokens := newMockedFormApp(mockService)

	req := jsonRequest(http.MethodDelete, "/api/forms/"+formID.Hex(), "")
	req.AddCookie(cookieForUser(t, tokens, stranger))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	assert.Equal(t, "Form not found", body["message"])

	mockService.AssertExpectations(t)
}
