package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/movierental/backend/internal/model"
	"github.com/movierental/backend/internal/repository"
	"github.com/movierental/backend/internal/utils"
)

// MovieHandler serves the movie catalogue endpoints.
type MovieHandler struct {
	Movies    MovieStore
	UploadDir string
}

func NewMovieHandler(movies MovieStore, uploadDir string) *MovieHandler {
	return &MovieHandler{Movies: movies, UploadDir: uploadDir}
}

// movieReq is validated at the boundary; the store performs no domain
// validation of its own. 1888 is the year of the oldest surviving film.
type movieReq struct {
	Title  string  `json:"title" validate:"required"`
	Year   int     `json:"year" validate:"required,gte=1888"`
	Genre  string  `json:"genre"`
	Rating float64 `json:"rating" validate:"gte=0,lte=10"`
	Status string  `json:"status" validate:"required,oneof=available pending offline"`
}

func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// List handles GET /api/movies.
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch movies"})
	}
	return c.JSON(http.StatusOK, movies)
}

// Get handles GET /api/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch movie"})
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /api/movies.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	m := model.Movie{
		Title:  req.Title,
		Year:   req.Year,
		Genre:  req.Genre,
		Rating: req.Rating,
		Status: req.Status,
	}
	if err := h.Movies.Create(c.Request().Context(), &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create movie"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"insertedId": m.ID})
}

// Update handles PUT /api/movies/:id.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	m := model.Movie{
		Title:  req.Title,
		Year:   req.Year,
		Genre:  req.Genre,
		Rating: req.Rating,
		Status: req.Status,
	}
	if err := h.Movies.Update(c.Request().Context(), id, &m); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update movie"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Movie updated"})
}

// Delete handles DELETE /api/movies/:id.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete movie"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Movie deleted"})
}

// UploadPoster handles POST /api/movies/:id/upload with a multipart
// `poster` field. The file is written to disk first and the stored path
// is then attached to the movie; if the movie turns out not to exist
// the orphaned file stays on disk, which the contract accepts.
func (h *MovieHandler) UploadPoster(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	fh, err := c.FormFile("poster")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "poster file is required"})
	}
	path, err := utils.SaveUpload(fh, h.UploadDir)
	if err != nil {
		if errors.Is(err, utils.ErrBadExtension) || errors.Is(err, utils.ErrFileTooLarge) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store file"})
	}
	if err := h.Movies.AttachPoster(c.Request().Context(), id, path); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save poster path"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Poster uploaded", "path": path})
}
