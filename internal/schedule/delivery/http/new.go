package http

import (
	"github.com/gin-gonic/gin"

	"calboss/internal/schedule"
	"calboss/pkg/log"
)

// Handler is the public interface for the schedule HTTP delivery layer.
type Handler interface {
	Today(c *gin.Context)
	Week(c *gin.Context)
	Search(c *gin.Context)
	AddEvent(c *gin.Context)
	RemoveEvents(c *gin.Context)
	AddNote(c *gin.Context)
	ShowBirthdays(c *gin.Context)
	AddBirthday(c *gin.Context)
	RemoveBirthday(c *gin.Context)
	SuggestCatchUps(c *gin.Context)
	ListCatchUps(c *gin.Context)
	AddCatchUp(c *gin.Context)
	ClearCatchUps(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc schedule.UseCase
}

// New creates a new HTTP handler for the schedule domain.
func New(l log.Logger, uc schedule.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
