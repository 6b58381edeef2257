package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/domain"
)

// CreateAccount creates an upstream account and mirrors the returned
// record locally.
func (h *Handler) CreateAccount(c *gin.Context) {
	var req createAccountRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body", "details": err.Error()})
			return
		}
	}

	params, err := req.toParams()
	if err != nil {
		writeError(c, err)
		return
	}

	rec, err := h.accounts.CreateUser(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	if rec != nil {
		// Mirror failures must not fail the request; the upstream is
		// the source of truth.
		_ = h.mirror.Upsert(c.Request.Context(), rec)
	}

	c.JSON(http.StatusCreated, gin.H{"user": rec})
}

// GetAccount looks one account up by uid, email or phone_number query
// parameter.
func (h *Handler) GetAccount(c *gin.Context) {
	q := domain.Query{
		UID:         c.Query("uid"),
		Email:       c.Query("email"),
		PhoneNumber: c.Query("phone_number"),
	}

	rec, err := h.accounts.GetUserBy(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": rec})
}

// UpdateAccount applies a partial update and mirrors the re-fetched
// record locally.
func (h *Handler) UpdateAccount(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body", "details": err.Error()})
		return
	}

	params, err := req.toParams()
	if err != nil {
		writeError(c, err)
		return
	}

	rec, err := h.accounts.UpdateUser(c.Request.Context(), c.Param("uid"), params)
	if err != nil {
		writeError(c, err)
		return
	}
	if rec != nil {
		_ = h.mirror.Upsert(c.Request.Context(), rec)
	}

	c.JSON(http.StatusOK, gin.H{"user": rec})
}

// DeleteAccount removes the account upstream and drops the mirror row.
func (h *Handler) DeleteAccount(c *gin.Context) {
	uid := c.Param("uid")

	if err := h.accounts.DeleteUser(c.Request.Context(), uid); err != nil {
		writeError(c, err)
		return
	}
	_ = h.mirror.Delete(c.Request.Context(), uid)

	c.Status(http.StatusNoContent)
}

// SetClaims replaces the account's custom claims. A null claims value
// removes all custom claims.
func (h *Handler) SetClaims(c *gin.Context) {
	var req setClaimsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body", "details": err.Error()})
			return
		}
	}

	rec, err := h.accounts.SetCustomUserClaims(c.Request.Context(), c.Param("uid"), req.Claims)
	if err != nil {
		writeError(c, err)
		return
	}
	if rec != nil {
		_ = h.mirror.Upsert(c.Request.Context(), rec)
	}

	c.JSON(http.StatusOK, gin.H{"user": rec})
}

// CreateSessionCookie mints a session cookie and passes the upstream
// body through unmodified.
func (h *Handler) CreateSessionCookie(c *gin.Context) {
	var req sessionCookieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body", "details": err.Error()})
		return
	}

	body, err := h.accounts.CreateSessionCookie(
		c.Request.Context(),
		req.IDToken,
		time.Duration(req.ValidDurationSeconds)*time.Second,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, body)
}

// writeError maps service errors onto HTTP statuses: validation
// failures are the caller's fault, everything else is an upstream
// failure.
func writeError(c *gin.Context, err error) {
	if domain.IsInvalidArgument(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var createErr *domain.CreateUserError
	var updateErr *domain.UpdateUserError
	var claimsErr *domain.SetCustomUserClaimsError
	if errors.As(err, &createErr) || errors.As(err, &updateErr) || errors.As(err, &claimsErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{"error": "upstream request failed", "details": err.Error()})
}
