package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mindcare/internal/models/request_models"
	"mindcare/internal/services"
	"mindcare/pkg/utils"
)

type MoodController struct {
	moodService  services.MoodServiceInterface
	statsService services.StatsServiceInterface
}

func NewMoodController(moodService services.MoodServiceInterface, statsService services.StatsServiceInterface) *MoodController {
	return &MoodController{
		moodService:  moodService,
		statsService: statsService,
	}
}

// CreateMood godoc
// @Summary Log a mood
// @Description Create a mood entry owned by the caller. Missing note and tags are filled in.
// @Tags Mood
// @Accept json
// @Produce json
// @Param request body request_models.CreateMoodRequest true "Mood entry"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /mood [post]
func (m *MoodController) CreateMood(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request_models.CreateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format: mood and intensity are required")
		return
	}

	entry, err := m.moodService.Create(c.Request.Context(), p, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, entry, "Mood entry created successfully")
}

// ListMoods godoc
// @Summary List mood entries
// @Description Newest first, scoped to the caller (admins may pass user_id)
// @Tags Mood
// @Produce json
// @Param page     query int    false "Page number (default 1)"
// @Param limit    query int    false "Page size 1-100 (default 10)"
// @Param mood     query string false "Filter by mood"
// @Param tag      query string false "Filter by tag"
// @Param activity query string false "Filter by activity"
// @Param from     query string false "RFC3339 lower bound on creation time"
// @Param to       query string false "RFC3339 upper bound on creation time"
// @Param user_id  query string false "Owner to list (admin only)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /mood [get]
func (m *MoodController) ListMoods(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	owner, ok := targetOwner(c, p)
	if !ok {
		return
	}
	page, ok := pageParams(c)
	if !ok {
		return
	}

	filter := request_models.MoodFilter{
		Mood:     strings.ToLower(c.Query("mood")),
		Tag:      strings.ToLower(c.Query("tag")),
		Activity: strings.ToLower(c.Query("activity")),
	}
	if filter.From, ok = timeParam(c, "from"); !ok {
		return
	}
	if filter.To, ok = timeParam(c, "to"); !ok {
		return
	}

	result, err := m.moodService.List(c.Request.Context(), p, owner, filter, page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Mood entries fetched successfully")
}

// GetMood godoc
// @Summary Get a mood entry
// @Tags Mood
// @Produce json
// @Param id path string true "Mood entry ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /mood/{id} [get]
func (m *MoodController) GetMood(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Mood entry")
	if !ok {
		return
	}

	entry, err := m.moodService.Get(c.Request.Context(), p, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entry, "Mood entry fetched successfully")
}

// UpdateMood godoc
// @Summary Update a mood entry
// @Description Partial update; the owner never changes
// @Tags Mood
// @Accept json
// @Produce json
// @Param id path string true "Mood entry ID"
// @Param request body request_models.UpdateMoodRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /mood/{id} [put]
func (m *MoodController) UpdateMood(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Mood entry")
	if !ok {
		return
	}

	var req request_models.UpdateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	entry, err := m.moodService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entry, "Mood entry updated successfully")
}

// DeleteMood godoc
// @Summary Delete a mood entry
// @Tags Mood
// @Produce json
// @Param id path string true "Mood entry ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /mood/{id} [delete]
func (m *MoodController) DeleteMood(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Mood entry")
	if !ok {
		return
	}

	if err := m.moodService.Delete(c.Request.Context(), p, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Mood entry deleted successfully")
}

// MoodStats godoc
// @Summary Mood statistics
// @Description Distribution, timeline, day-of-week, hour-of-day and activity/tag correlation, bucketed in UTC
// @Tags Mood
// @Produce json
// @Param days    query int    false "Trailing window in days 1-365 (default 30; exclusive with start/end)"
// @Param start   query string false "RFC3339 start"
// @Param end     query string false "RFC3339 end"
// @Param dense   query bool   false "Zero-fill days without entries"
// @Param user_id query string false "Owner (admin only)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /mood/stats [get]
func (m *MoodController) MoodStats(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	owner, ok := targetOwner(c, p)
	if !ok {
		return
	}
	window, ok := statsWindow(c)
	if !ok {
		return
	}

	stats, err := m.statsService.MoodStats(c.Request.Context(), p, owner, window)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Mood statistics fetched successfully")
}

// MoodInsights godoc
// @Summary Weekly mood insights
// @Description Short insights and up to three suggestions from the last 7 days
// @Tags Mood
// @Produce json
// @Param user_id query string false "Owner (admin only)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /mood/insights [get]
func (m *MoodController) MoodInsights(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	owner, ok := targetOwner(c, p)
	if !ok {
		return
	}

	insights, err := m.statsService.MoodInsights(c.Request.Context(), p, owner)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, insights, "Mood insights fetched successfully")
}
