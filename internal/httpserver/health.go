package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"calboss/internal/schedule/repository"
	"calboss/pkg/datemath"
	"calboss/pkg/response"
)

const (
	// ServiceName identifies CalBoss in health payloads.
	ServiceName = "calboss"
	// Version is reported by every health endpoint.
	Version = "1.0.0"

	readyCheckTimeout = 5 * time.Second
)

// healthCheck reports process health plus which calendar backend is wired.
// @Summary Health Check
// @Description Service identity and configured calendar backend
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":      "healthy",
		"service":     ServiceName,
		"version":     Version,
		"environment": srv.environment,
		"backend":     srv.backend,
	})
}

// readyCheck asks the calendar store for at most one event in the next
// minute. Any backend error makes the instance not ready.
// @Summary Readiness Check
// @Description Ready only while the calendar backend answers
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp
// @Failure 503 {object} response.Resp
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyCheckTimeout)
	defer cancel()

	now := time.Now()
	_, err := srv.calendarStore.ListEvents(ctx, repository.ListEventsOptions{
		Window:     datemath.Window{Start: now, End: now.Add(time.Minute)},
		MaxResults: 1,
	})
	if err != nil {
		srv.l.Warnf(ctx, "httpserver.readyCheck: calendar backend %s unreachable: %v", srv.backend, err)
		response.ServiceUnavailable(c, gin.H{
			"status":  "not_ready",
			"backend": srv.backend,
		})
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"backend": srv.backend,
	})
}

// liveCheck answers as long as the process can serve HTTP.
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{"status": "alive"})
}
