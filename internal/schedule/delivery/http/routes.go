package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods under rg.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	sched := rg.Group("/schedule")
	{
		sched.GET("/today", h.Today)
		sched.GET("/week", h.Week)
	}

	events := rg.Group("/events")
	{
		events.GET("/search", h.Search)
		events.POST("", h.AddEvent)
		events.DELETE("", h.RemoveEvents)
		events.PUT("/:id/note", h.AddNote)
	}

	birthdays := rg.Group("/birthdays")
	{
		birthdays.GET("", h.ShowBirthdays)
		birthdays.POST("", h.AddBirthday)
		birthdays.DELETE("/:name", h.RemoveBirthday)
	}

	catchUps := rg.Group("/catchups")
	{
		catchUps.GET("/suggest", h.SuggestCatchUps)
		catchUps.GET("", h.ListCatchUps)
		catchUps.POST("", h.AddCatchUp)
		catchUps.DELETE("/:name", h.ClearCatchUps)
	}
}
