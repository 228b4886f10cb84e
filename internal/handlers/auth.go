package handlers

import (
	"errors"
	"net/http"

	"energy_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// SignInRequest is the sign-in payload.
type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUpRequest is the sign-up payload.
type SignUpRequest struct {
	Username string `json:"username" binding:"required" example:"juan"`
	Password string `json:"password" binding:"required" example:"s3cret"`
	FullName string `json:"full_name" example:"Juan Dela Cruz"`
	Email    string `json:"email" example:"juan@example.com"`
}

// DeleteAccountRequest confirms account deletion with the current password.
type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignUpRequest  true  "New account"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input SignUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), service.SignUpInput{
		Username: input.Username,
		Password: input.Password,
		FullName: input.FullName,
		Email:    input.Email,
	})
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_up_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignInRequest  true  "Credentials"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input SignInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_in_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Delete account
// @Description  Deletes the account and everything it owns after checking the password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      DeleteAccountRequest  true  "Password confirmation"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/account [delete]
// @Security     BearerAuth
func (h *Handler) deleteAccount(c *gin.Context) {
	userID, ok := getUserId(c)
	if !ok {
		return
	}
	var input DeleteAccountRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.DeleteAccount(c.Request.Context(), userID, input.Password); err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
			return
		}
		h.respondError(c, "account_delete_failed", err, "user_id", userID)
		return
	}
	h.services.Forget(userID)
	if h.log != nil {
		h.log.Infow("account_deleted", "user_id", userID)
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
