package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movierental/backend/internal/middleware"
	"github.com/movierental/backend/internal/model"
	"github.com/movierental/backend/internal/repository"
	"github.com/movierental/backend/internal/utils"
)

// ApplicationHandler serves the rental application endpoints.
type ApplicationHandler struct {
	Applications ApplicationStore
	UploadDir    string
}

func NewApplicationHandler(apps ApplicationStore, uploadDir string) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps, UploadDir: uploadDir}
}

type applicationReq struct {
	ApplicantName  string `json:"applicantName" validate:"required"`
	ApplicantEmail string `json:"applicantEmail" validate:"required,email"`
	Description    string `json:"description" validate:"required"`
}

type statusReq struct {
	Status string `json:"status" validate:"required,oneof=new pending accepted rejected"`
}

// Create handles POST /api/applications. The status starts as "new" and
// the owning user is taken from the token identity, never from the body.
func (h *ApplicationHandler) Create(c echo.Context) error {
	id, _ := middleware.CurrentIdentity(c)

	var req applicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a := model.Application{
		ApplicantName:  req.ApplicantName,
		ApplicantEmail: req.ApplicantEmail,
		Description:    req.Description,
		UserID:         id.UserID,
	}
	if err := h.Applications.Create(c.Request().Context(), &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create application"})
	}
	return c.JSON(http.StatusCreated, a)
}

// List handles GET /api/applications. An optional ?email= query narrows
// the result to one applicant email.
func (h *ApplicationHandler) List(c echo.Context) error {
	var (
		apps []model.Application
		err  error
	)
	if email := c.QueryParam("email"); email != "" {
		apps, err = h.Applications.ListByEmail(c.Request().Context(), email)
	} else {
		apps, err = h.Applications.List(c.Request().Context())
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch applications"})
	}
	return c.JSON(http.StatusOK, apps)
}

// ListMine handles GET /api/applications/user, returning the caller's
// own applications.
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	apps, err := h.Applications.ListByUser(c.Request().Context(), id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch applications"})
	}
	return c.JSON(http.StatusOK, apps)
}

// UpdateStatus handles PUT /api/applications/:id/status. Any status in
// the enum may be set from any prior status.
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.Applications.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Application not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update application status"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Application status updated"})
}

// UploadImage handles POST /api/applications/:id/upload with a multipart
// `image` field.
func (h *ApplicationHandler) UploadImage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file is required"})
	}
	path, err := utils.SaveUpload(fh, h.UploadDir)
	if err != nil {
		if errors.Is(err, utils.ErrBadExtension) || errors.Is(err, utils.ErrFileTooLarge) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store file"})
	}
	if err := h.Applications.AttachImage(c.Request().Context(), id, path); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Application not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save image path"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Image uploaded", "path": path})
}
