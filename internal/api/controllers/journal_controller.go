package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mindcare/internal/models/request_models"
	"mindcare/internal/services"
	"mindcare/pkg/utils"
)

type JournalController struct {
	journalService services.JournalServiceInterface
	statsService   services.StatsServiceInterface
}

func NewJournalController(journalService services.JournalServiceInterface, statsService services.StatsServiceInterface) *JournalController {
	return &JournalController{
		journalService: journalService,
		statsService:   statsService,
	}
}

// CreateJournal godoc
// @Summary Write a journal entry
// @Description Sentiment is scored from the content unless sentiment_score is supplied
// @Tags Journal
// @Accept json
// @Produce json
// @Param request body request_models.CreateJournalRequest true "Journal entry"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journal [post]
func (j *JournalController) CreateJournal(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request_models.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format: content is required")
		return
	}

	entry, err := j.journalService.Create(c.Request.Context(), p, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, entry, "Journal entry created successfully")
}

// ListJournals godoc
// @Summary List journal entries
// @Tags Journal
// @Produce json
// @Param page    query int    false "Page number (default 1)"
// @Param limit   query int    false "Page size 1-100 (default 10)"
// @Param emotion query string false "Filter by emotion"
// @Param tag     query string false "Filter by tag"
// @Param mood    query int    false "Filter by mood 1-5"
// @Param from    query string false "RFC3339 lower bound on creation time"
// @Param to      query string false "RFC3339 upper bound on creation time"
// @Param user_id query string false "Owner to list (admin only)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journal [get]
func (j *JournalController) ListJournals(c *gin.Context) {
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

	filter := request_models.JournalFilter{
		Emotion: strings.ToLower(c.Query("emotion")),
		Tag:     strings.ToLower(c.Query("tag")),
	}
	if raw := c.Query("mood"); raw != "" {
		mood, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "mood must be an integer")
			return
		}
		filter.Mood = mood
	}
	if filter.From, ok = timeParam(c, "from"); !ok {
		return
	}
	if filter.To, ok = timeParam(c, "to"); !ok {
		return
	}

	result, err := j.journalService.List(c.Request.Context(), p, owner, filter, page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Journal entries fetched successfully")
}

// GetJournal godoc
// @Summary Get a journal entry
// @Tags Journal
// @Produce json
// @Param id path string true "Journal entry ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journal/{id} [get]
func (j *JournalController) GetJournal(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Journal entry")
	if !ok {
		return
	}

	entry, err := j.journalService.Get(c.Request.Context(), p, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entry, "Journal entry fetched successfully")
}

// UpdateJournal godoc
// @Summary Update a journal entry
// @Tags Journal
// @Accept json
// @Produce json
// @Param id path string true "Journal entry ID"
// @Param request body request_models.UpdateJournalRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journal/{id} [put]
func (j *JournalController) UpdateJournal(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Journal entry")
	if !ok {
		return
	}

	var req request_models.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	entry, err := j.journalService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entry, "Journal entry updated successfully")
}

// DeleteJournal godoc
// @Summary Delete a journal entry
// @Tags Journal
// @Produce json
// @Param id path string true "Journal entry ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journal/{id} [delete]
func (j *JournalController) DeleteJournal(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Journal entry")
	if !ok {
		return
	}

	if err := j.journalService.Delete(c.Request.Context(), p, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Journal entry deleted successfully")
}

// JournalStats godoc
// @Summary Journal statistics
// @Description Emotion distribution, timeline, day-of-week and tag correlation with sentiment averages
// @Tags Journal
// @Produce json
// @Param days    query int    false "Trailing window in days 1-365 (default 30)"
// @Param start   query string false "RFC3339 start"
// @Param end     query string false "RFC3339 end"
// @Param dense   query bool   false "Zero-fill days without entries"
// @Param user_id query string false "Owner (admin only)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journal/stats [get]
func (j *JournalController) JournalStats(c *gin.Context) {
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

	stats, err := j.statsService.JournalStats(c.Request.Context(), p, owner, window)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Journal statistics fetched successfully")
}
