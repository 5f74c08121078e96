package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mindcare/internal/models/request_models"
	"mindcare/internal/services"
	"mindcare/pkg/middleware"
	"mindcare/pkg/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// principal aborts with 401 when the JWT middleware did not run.
func principal(c *gin.Context) (services.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return services.Principal{}, false
	}
	return p, true
}

// pathID reports a malformed id as not found; it cannot name any entry.
func pathID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Sprintf("%s not found", what))
		return uuid.Nil, false
	}
	return id, true
}

// targetOwner is the caller unless ?user_id= names someone else; the
// services only let admins through in that case.
func targetOwner(c *gin.Context, p services.Principal) (uuid.UUID, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return p.ID, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "user_id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(c *gin.Context) (request_models.PageRequest, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return request_models.PageRequest{}, false
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size")
		return request_models.PageRequest{}, false
	}
	return request_models.PageRequest{Page: page, Limit: limit}, true
}

// timeParam parses an optional RFC3339 query value.
func timeParam(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Sprintf("%s must be RFC3339 (e.g. 2025-10-01T00:00:00Z)", key))
		return time.Time{}, false
	}
	return t, true
}

func statsWindow(c *gin.Context) (request_models.StatsWindow, bool) {
	var w request_models.StatsWindow

	if raw := c.Query("days"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			utils.RespondError(c, http.StatusBadRequest, "days must be a positive integer")
			return w, false
		}
		w.Days = d
	}

	var ok bool
	if w.Start, ok = timeParam(c, "start"); !ok {
		return w, false
	}
	if w.End, ok = timeParam(c, "end"); !ok {
		return w, false
	}

	if raw := c.Query("dense"); raw != "" {
		dense, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "dense must be true or false")
			return w, false
		}
		w.Dense = dense
	}
	return w, true
}
