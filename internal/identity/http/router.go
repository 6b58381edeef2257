package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/accounts", h.CreateAccount)
	rg.GET("/accounts", h.GetAccount)
	rg.PATCH("/accounts/:uid", h.UpdateAccount)
	rg.DELETE("/accounts/:uid", h.DeleteAccount)
	rg.PUT("/accounts/:uid/claims", h.SetClaims)
	rg.POST("/session-cookies", h.CreateSessionCookie)
}
