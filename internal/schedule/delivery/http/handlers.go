package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"calboss/internal/schedule"
	"calboss/pkg/response"
)

// Today godoc
// @Summary     Today's schedule
// @Description Lists the rest of today's events in start order.
// @Tags        Schedule
// @Produce     json
// @Success     200 {object} todayResp
// @Failure     502 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/schedule/today [GET]
func (h *handler) Today(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Today(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.Today: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newTodayResp(output))
}

// Week godoc
// @Summary     Upcoming week
// @Description Groups the next seven days of events by day label.
// @Tags        Schedule
// @Produce     json
// @Success     200 {object} weekResp
// @Failure     502 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/schedule/week [GET]
func (h *handler) Week(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Week(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.Week: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newWeekResp(output))
}

// Search godoc
// @Summary     Search events
// @Description Keyword search over the coming year, or the whole history with all=true.
// @Tags        Events
// @Produce     json
// @Param       q   query string true  "Keyword"
// @Param       all query bool   false "Include past events"
// @Success     200 {object} daysResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/events/search [GET]
func (h *handler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSearchReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Search(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Search: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSearchResp(output))
}

// AddEvent godoc
// @Summary     Add an event
// @Description Creates a timed or all-day event. An unreadable reminder is returned as a warning.
// @Tags        Events
// @Accept      json
// @Produce     json
// @Param       body body addEventReq true "Event"
// @Success     200 {object} addEventResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/events [POST]
func (h *handler) AddEvent(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAddEventReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.AddEvent(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.AddEvent: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newAddEventResp(output))
}

// RemoveEvents godoc
// @Summary     Remove events
// @Description Deletes each id and reports every outcome. Recurring instances remove their series.
// @Tags        Events
// @Accept      json
// @Produce     json
// @Param       body body removeEventsReq true "Event ids"
// @Success     200 {object} batchResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/events [DELETE]
func (h *handler) RemoveEvents(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRemoveEventsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.RemoveEvents(ctx, req.IDs)
	if err != nil {
		h.l.Warnf(ctx, "uc.RemoveEvents: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newBatchResp(output))
}

// AddNote godoc
// @Summary     Replace an event's notes
// @Tags        Events
// @Accept      json
// @Produce     json
// @Param       id   path string     true "Event ID"
// @Param       body body addNoteReq true "Note"
// @Success     200 {object} addEventResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/events/{id}/note [PUT]
func (h *handler) AddNote(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAddNoteReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.AddNote(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.AddNote: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newAddEventResp(output))
}

// ShowBirthdays godoc
// @Summary     Show birthdays
// @Description Birthdays in the scope's window grouped by month.
// @Tags        Birthdays
// @Produce     json
// @Param       scope query string false "all, month (default), week or today"
// @Success     200 {object} birthdaysResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/birthdays [GET]
func (h *handler) ShowBirthdays(c *gin.Context) {
	ctx := c.Request.Context()

	scope := schedule.BirthdayScope(strings.ToLower(strings.TrimSpace(c.Query("scope"))))
	output, err := h.uc.ShowBirthdays(ctx, scope)
	if err != nil {
		h.l.Warnf(ctx, "uc.ShowBirthdays: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newBirthdaysResp(output))
}

// AddBirthday godoc
// @Summary     Add a birthday
// @Description Creates a yearly all-day event from the next MM/DD occurrence.
// @Tags        Birthdays
// @Accept      json
// @Produce     json
// @Param       body body addBirthdayReq true "Birthday"
// @Success     200 {object} addEventResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/birthdays [POST]
func (h *handler) AddBirthday(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAddBirthdayReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.AddBirthday(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.AddBirthday: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newAddEventResp(output))
}

// RemoveBirthday godoc
// @Summary     Remove a birthday
// @Tags        Birthdays
// @Produce     json
// @Param       name path string true "Person name"
// @Success     200 {object} batchResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/birthdays/{name} [DELETE]
func (h *handler) RemoveBirthday(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.RemoveBirthday(ctx, c.Param("name"))
	if err != nil {
		h.l.Warnf(ctx, "uc.RemoveBirthday: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newBatchResp(output))
}

// SuggestCatchUps godoc
// @Summary     Suggest catch-up dates
// @Description Predicts a next meeting date per person from catch-up history.
// @Tags        CatchUps
// @Produce     json
// @Param       names query string false "Comma-separated names; empty means everyone with history"
// @Success     200 {object} suggestResp
// @Failure     502 {object} response.Resp "Calendar backend unavailable"
// @Router      /api/v1/catchups/suggest [GET]
func (h *handler) SuggestCatchUps(c *gin.Context) {
	ctx := c.Request.Context()

	req := h.processSuggestReq(c)
	output, err := h.uc.SuggestCatchUps(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.SuggestCatchUps: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSuggestResp(output))
}

// ListCatchUps godoc
// @Summary     Upcoming catch-ups
// @Tags        CatchUps
// @Produce     json
// @Success     200 {object} daysResp
// @Router      /api/v1/catchups [GET]
func (h *handler) ListCatchUps(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.ListCatchUps(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.ListCatchUps: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListCatchUpsResp(output))
}

// AddCatchUp godoc
// @Summary     Schedule a catch-up
// @Description Creates a marked catch-up event; cadence_months is stored for future suggestions.
// @Tags        CatchUps
// @Accept      json
// @Produce     json
// @Param       body body addCatchUpReq true "Catch-up"
// @Success     200 {object} addEventResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/catchups [POST]
func (h *handler) AddCatchUp(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAddCatchUpReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.AddCatchUp(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.AddCatchUp: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newAddEventResp(output))
}

// ClearCatchUps godoc
// @Summary     Clear upcoming catch-ups for a person
// @Tags        CatchUps
// @Produce     json
// @Param       name path string true "Person name"
// @Success     200 {object} batchResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/catchups/{name} [DELETE]
func (h *handler) ClearCatchUps(c *gin.Context) {
	ctx := c.Request.Context()

	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	output, err := h.uc.ClearCatchUps(ctx, name)
	if err != nil {
		h.l.Warnf(ctx, "uc.ClearCatchUps: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newBatchResp(output))
}
