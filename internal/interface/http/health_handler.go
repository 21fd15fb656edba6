package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ipdr-analysis/auth-server/pkg/response"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Health GET /api/health
func Health(c *gin.Context) {
	response.Success(c, http.StatusOK, healthResponse{Status: "OK", Timestamp: time.Now().UTC()})
}
