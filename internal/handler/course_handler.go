package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/courseconnect-api/internal/dto"
	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/internal/service"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
	"github.com/noah-isme/courseconnect-api/pkg/response"
)

type courseService interface {
	List(ctx context.Context) []models.Course
	Get(ctx context.Context, id string) (*models.Course, error)
	Register(ctx context.Context, state models.AppState, courseID string) (service.CourseResult, error)
	Unregister(ctx context.Context, state models.AppState, courseID string) (service.CourseResult, error)
	Create(ctx context.Context, state models.AppState, draft models.CourseDraft) (*models.Course, uint64, error)
	Delete(ctx context.Context, state models.AppState, courseID string, confirmed bool) (service.CourseResult, error)
}

type rosterService interface {
	Export(ctx context.Context, state models.AppState, courseID, format string) (*service.RosterFile, error)
}

// CourseHandler exposes the catalog, enrollment and roster endpoints.
type CourseHandler struct {
	courses courseService
	rosters rosterService
}

func NewCourseHandler(courses courseService, rosters rosterService) *CourseHandler {
	return &CourseHandler{courses: courses, rosters: rosters}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses := h.courses.List(c.Request.Context())
	response.JSON(c, http.StatusOK, courses, map[string]interface{}{"total": len(courses)})
}

// Get godoc
// @Summary Get a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create godoc
// @Summary Create a course taught by the current user
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body models.CourseDraft true "Course draft"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	state, ok := currentState(c)
	if !ok {
		return
	}
	var draft models.CourseDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, bindError(err))
		return
	}
	course, version, err := h.courses.Create(c.Request.Context(), state, draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, course, dto.MutationMeta{Changed: true, Version: version}.Map())
}

// Delete godoc
// @Summary Delete a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 428 {object} response.Envelope
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	state, ok := currentState(c)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	result, err := h.courses.Delete(c.Request.Context(), state, c.Param("id"), confirmed)
	if err != nil {
		response.Error(c, err)
		return
	}
	writeResult(c, result)
}

// Register godoc
// @Summary Register the current student for a course
// @Description Full, duplicate and missing course requests succeed with meta.changed=false.
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /courses/{id}/registration [post]
func (h *CourseHandler) Register(c *gin.Context) {
	state, ok := currentState(c)
	if !ok {
		return
	}
	result, err := h.courses.Register(c.Request.Context(), state, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeResult(c, result)
}

// Unregister godoc
// @Summary Drop the current student from a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /courses/{id}/registration [delete]
func (h *CourseHandler) Unregister(c *gin.Context) {
	state, ok := currentState(c)
	if !ok {
		return
	}
	result, err := h.courses.Unregister(c.Request.Context(), state, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeResult(c, result)
}

// Roster godoc
// @Summary Export a course roster
// @Tags Courses
// @Produce text/csv,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Course ID"
// @Param format query string false "csv, pdf or xlsx"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /courses/{id}/roster [get]
func (h *CourseHandler) Roster(c *gin.Context) {
	if h.rosters == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	state, ok := currentState(c)
	if !ok {
		return
	}
	file, err := h.rosters.Export(c.Request.Context(), state, c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

func writeResult(c *gin.Context, result service.CourseResult) {
	meta := dto.MutationMeta{Changed: result.Changed(), Outcome: string(result.Outcome), Version: result.Version}
	var data interface{}
	if result.Course != nil {
		data = result.Course
	}
	response.JSON(c, http.StatusOK, data, meta.Map())
}
