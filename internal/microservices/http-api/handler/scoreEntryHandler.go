package handler

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"restaurantscorer/internal/apperrors"
	"restaurantscorer/internal/microservices/http-api/dto"
	"restaurantscorer/internal/microservices/http-api/models"
	"restaurantscorer/internal/microservices/http-api/service"
	"restaurantscorer/internal/microservices/http-api/views"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	requestTimeout = 5 * time.Second
	MaxListLimit   = 1000
)

type ScoreEntryHandler struct {
	svc service.ScoreEntryService
}

func NewScoreEntryHandler(svc service.ScoreEntryService) *ScoreEntryHandler {
	return &ScoreEntryHandler{svc: svc}
}

func (h *ScoreEntryHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.POST("/submit", h.Submit)
	r.GET("/entries", h.List)
	r.GET("/entries/:id", h.Get)
	r.GET("/history", h.History)
}

// Index serves the entry form
func (h *ScoreEntryHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, views.IndexPage, views.IndexData{
		MinRating: service.MinRating,
		MaxRating: service.MaxRating,
	})
}

// Submit stores a form-encoded entry and answers with an HTML fragment
func (h *ScoreEntryHandler) Submit(c *gin.Context) {
	var form dto.SubmitScoreForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(err)
		c.HTML(http.StatusBadRequest, views.SubmitError, views.ErrorData{Message: bindErrorMessage(err)})
		return
	}

	entry, err := form.ToModel()
	if err != nil {
		c.Error(err)
		c.HTML(http.StatusBadRequest, views.SubmitError, views.ErrorData{Message: publicMessage(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	saved, err := h.svc.Submit(ctx, &entry)
	if err != nil {
		c.Error(err)
		c.HTML(apperrors.HTTPStatus(err), views.SubmitError, views.ErrorData{Message: publicMessage(err)})
		return
	}

	c.HTML(http.StatusOK, views.SubmitSuccess, views.SuccessData{
		RestaurantName: saved.RestaurantName,
		FinalScore:     saved.FinalScore,
	})
}

// List returns the most recent entries as JSON
func (h *ScoreEntryHandler) List(c *gin.Context) {
	limit, err := parseLimit(c, service.DefaultListLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	entries, err := h.svc.List(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToScoreEntryResponses(entries))
}

func (h *ScoreEntryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperrors.Validation("invalid id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	entry, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToScoreEntryResponse(*entry))
}

// History renders the past entries as an HTML fragment
func (h *ScoreEntryHandler) History(c *gin.Context) {
	limit, err := parseLimit(c, service.DefaultHistoryLimit)
	if err != nil {
		c.Error(err)
		c.HTML(http.StatusBadRequest, views.SubmitError, views.ErrorData{Message: publicMessage(err)})
		return
	}
	sortBy := models.HistorySort(c.DefaultQuery("sort_by", string(models.SortByDate)))

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	entries, err := h.svc.History(ctx, sortBy, limit)
	if err != nil {
		c.Error(err)
		c.HTML(apperrors.HTTPStatus(err), views.SubmitError, views.ErrorData{Message: publicMessage(err)})
		return
	}

	data := views.HistoryData{SortBy: string(sortBy), Entries: make([]views.HistoryEntry, 0, len(entries))}
	for _, e := range entries {
		item := views.HistoryEntry{
			RestaurantName: e.RestaurantName,
			Link:           e.Link,
			DateVisited:    e.DateVisited,
			FinalScore:     e.FinalScore,
			Taste:          e.Taste,
			Experience:     e.Experience,
			Value:          e.Value,
			Mood:           e.Mood,
		}
		if e.Notes != nil {
			item.Notes = *e.Notes
		}
		data.Entries = append(data.Entries, item)
	}
	c.HTML(http.StatusOK, views.HistoryListing, data)
}

// parseLimit reads ?limit=, falling back to def when absent. Values above
// MaxListLimit are capped.
func parseLimit(c *gin.Context, def int) (int, error) {
	raw, ok := c.GetQuery("limit")
	if !ok {
		return def, nil
	}
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || limit <= 0 {
		return 0, apperrors.Validation("limit must be a positive integer")
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return limit, nil
}

func respondError(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(apperrors.HTTPStatus(err), dto.ErrorResponse{
		Error: dto.ErrorBody{Code: apperrors.CodeOf(err), Message: publicMessage(err)},
	})
}

// publicMessage hides causes; only the AppError message reaches the client.
func publicMessage(err error) string {
	if appErr, ok := apperrors.As(err); ok {
		return appErr.Message
	}
	return "internal server error"
}

func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, formFieldName(fe.StructField()))
		}
		return "missing required fields: " + strings.Join(fields, ", ")
	}

	var timeErr *time.ParseError
	if errors.As(err, &timeErr) {
		return "date_visited must be a date in YYYY-MM-DD format"
	}
	return "invalid form data"
}

func formFieldName(structField string) string {
	if f, ok := reflect.TypeOf(dto.SubmitScoreForm{}).FieldByName(structField); ok {
		if tag := f.Tag.Get("form"); tag != "" {
			return tag
		}
	}
	return structField
}
