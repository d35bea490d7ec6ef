package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"formforge-backend/src/models"
	formSvc "formforge-backend/src/services/forms"
	"formforge-backend/src/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// FormService is the slice of the forms service the controller depends on.
// Production wiring uses formSvc.Service; tests substitute a mock.
type FormService interface {
	GetStats(ctx context.Context, userID primitive.ObjectID) (*models.FormStats, error)
	Create(ctx context.Context, userID primitive.ObjectID, name, description string) (primitive.ObjectID, error)
	GetAll(ctx context.Context, userID primitive.ObjectID) ([]models.Form, error)
	GetByID(ctx context.Context, userID, formID primitive.ObjectID) (*models.Form, error)
	UpdateContent(ctx context.Context, userID, formID primitive.ObjectID, content string) (*models.Form, error)
	Publish(ctx context.Context, userID, formID primitive.ObjectID) (*models.Form, error)
	GetContentByShareURL(ctx context.Context, shareURL string) (string, error)
	Submit(ctx context.Context, formURL, content string) (*models.Form, error)
	GetSubmissions(ctx context.Context, userID, formID primitive.ObjectID) (*models.FormWithSubmissions, error)
	Delete(ctx context.Context, userID, formID primitive.ObjectID) (*models.Form, error)
	RemoveElement(ctx context.Context, userID, formID primitive.ObjectID, elementID string) (*models.Form, error)
}

type FormController struct {
	forms FormService
}

func NewFormController() *FormController {
	return NewFormControllerWith(formSvc.Service{})
}

func NewFormControllerWith(forms FormService) *FormController {
	return &FormController{forms: forms}
}

// --------- Input DTOs ---------

type createFormRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type updateContentRequest struct {
	Content string `json:"content"`
}

type formContentRequest struct {
	ShareURL string `json:"shareUrl"`
}

type submitFormRequest struct {
	FormURL string `json:"formUrl" validate:"required"`
	Content string `json:"content"`
}

type deleteElementRequest struct {
	ElementID string `json:"elementId" validate:"required"`
}

// ownerID resolves the scoping owner from the identity the auth gate placed
// in Locals. Legacy userId fields in the query or body are ignored: the
// token is the only source of ownership.
func ownerID(c *fiber.Ctx) (primitive.ObjectID, error) {
	userID, _ := c.Locals("userId").(string)
	return primitive.ObjectIDFromHex(userID)
}

func handleFormError(c *fiber.Ctx, err error) error {
	if errors.Is(err, formSvc.ErrFormNotFound) {
		return utils.HandleError(c, fiber.StatusNotFound, "Form not found")
	}
	log.Printf("Error on form operation: %v", err)
	return utils.HandleError(c, fiber.StatusInternalServerError, "An unexpected error occurred")
}

// GetFormStats godoc
// @Summary      Aggregate visit/submission stats across the caller's forms
// @Tags         forms
// @Produce      json
// @Success      200  {object}  models.FormStats
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/forms/stats [get]
func (fc *FormController) GetFormStats(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "User unauthorized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := fc.forms.GetStats(ctx, userID)
	if err != nil {
		return handleFormError(c, err)
	}

	return c.JSON(stats)
}

// CreateForm godoc
// @Summary      Create a new form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body body createFormRequest true "Form name and description"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/forms/create [post]
func (fc *FormController) CreateForm(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "User unauthorized")
	}

	var req createFormRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Name is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	formID, err := fc.forms.Create(ctx, userID, req.Name, req.Description)
	if err != nil {
		return handleFormError(c, err)
	}

	return c.JSON(fiber.Map{"formId": formID})
}

// GetForms godoc
// @Summary      List the caller's forms, newest first
// @Tags         forms
// @Produce      json
// @Success      200  {array}  models.Form
// @Router       /api/forms [get]
func (fc *FormController) GetForms(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "User unauthorized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	list, err := fc.forms.GetAll(ctx, userID)
	if err != nil {
		return handleFormError(c, err)
	}

	return c.JSON(list)
}

func (fc *FormController) GetFormByID(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "User unauthorized")
	}

	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Form not found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := fc.forms.GetByID(ctx, userID, formID)
	if err != nil {
		return handleFormError(c, err)
	}

	return c.JSON(form)
}

func (fc *FormController) UpdateFormContent(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "User unauthorized")
	}

	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Form not found")
	}

	var req updateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := fc.forms.UpdateContent(ctx, userID, formID, req.Content)
	if err != nil {
		return handleFormError(c, err)
	}

	return c.JSON(form)
}

func (fc *FormController) PublishForm(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "User unauthorized")
	}

	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Form not found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := fc.forms.Publish(ctx, userID, formID)
	if err != nil {
		return handleFormError(c, err)
	}

	return c.JSON(form)
}

// GetFormContent godoc
// @Summary      Fetch a form's content by share link (public)
// @Description  Counts a visit and returns the content blob. No auth.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body body formContentRequest true "Share link"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/forms/content [post]
func (fc *FormController) GetFormContent(c *fiber.Ctx) error {
	var req formContentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if req.ShareURL == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "shareUrl is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	content, err := fc.forms.GetContentByShareURL(ctx, req.ShareURL)
	if err != nil {
		return handleFormError(c, err)
	}

	return c.JSON(fiber.Map{"content": content})
}

// SubmitForm godoc
// @Summary      Submit against a published form by share link (public)
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body body submitFormRequest true "Share link and submission payload"
// @Success      200  {object}  models.Form
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/forms/submit [post]
func (fc *FormController) SubmitForm(c *fiber.Ctx) error {
	var req submitFormRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "formUrl is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := fc.forms.Submit(ctx, req.FormURL, req.Content)
	if err != nil {
		return handleFormError(c, err)
	}

	return c.JSON(form)
}

func (fc *FormController) GetFormSubmissions(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "User unauthorized")
	}

	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Form not found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := fc.forms.GetSubmissions(ctx, userID, formID)
	if err != nil {
		return handleFormError(c, err)
	}

	return c.JSON(form)
}

func (fc *FormController) DeleteForm(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "User unauthorized")
	}

	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Form not found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := fc.forms.Delete(ctx, userID, formID)
	if err != nil {
		return handleFormError(c, err)
	}

	return c.JSON(form)
}

func (fc *FormController) DeleteFormElement(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "User unauthorized")
	}

	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, "Form not found")
	}

	var req deleteElementRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "elementId is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	form, err := fc.forms.RemoveElement(ctx, userID, formID, req.ElementID)
	if err != nil {
		return handleFormError(c, err)
	}

	return c.JSON(form)
}
