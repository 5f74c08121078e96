package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcare/internal/models/request_models"
	"mindcare/internal/services"
	"mindcare/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a new user account and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Account registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	auth, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, auth, "Account created successfully")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate with email and password and return a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	auth, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, auth, "Login successful")
}

// Refresh godoc
// @Summary Renew a session
// @Description Exchange a refresh token for a new token pair. The old refresh token stops working.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RefreshRequest true "Refresh payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/refresh [post]
func (a *AccountController) Refresh(c *gin.Context) {
	var req request_models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	pair, err := a.accountService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pair, "Session renewed")
}

// Logout godoc
// @Summary Logout
// @Description Revoke a refresh token. Always succeeds.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RefreshRequest true "Refresh token to revoke"
// @Success 200 {object} utils.APIResponse
// @Router /auth/logout [post]
func (a *AccountController) Logout(c *gin.Context) {
	var req request_models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		a.accountService.Logout(c.Request.Context(), req.RefreshToken)
	}

	utils.RespondSuccess(c, nil, "Logged out")
}

// Me godoc
// @Summary Current user
// @Description Return the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (a *AccountController) Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	account, err := a.accountService.Me(c.Request.Context(), p)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Profile fetched successfully")
}

// UpdateDetails godoc
// @Summary Update profile
// @Description Change username, email or preferences
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.UpdateDetailsRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /auth/updatedetails [put]
func (a *AccountController) UpdateDetails(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request_models.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := a.accountService.UpdateDetails(c.Request.Context(), p, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Profile updated successfully")
}

// UpdatePassword godoc
// @Summary Change password
// @Description Verify the current password, set a new one and issue a fresh session. Other sessions are revoked.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.UpdatePasswordRequest true "Password change payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /auth/updatepassword [put]
func (a *AccountController) UpdatePassword(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request_models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	auth, err := a.accountService.UpdatePassword(c.Request.Context(), p, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, auth, "Password updated successfully")
}
