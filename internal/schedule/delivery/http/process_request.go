package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"calboss/pkg/response"
)

func (h *handler) processSearchReq(c *gin.Context) (searchReq, error) {
	var req searchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, response.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, req.validate()
}

func (h *handler) processAddEventReq(c *gin.Context) (addEventReq, error) {
	var req addEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, response.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, req.validate()
}

func (h *handler) processRemoveEventsReq(c *gin.Context) (removeEventsReq, error) {
	var req removeEventsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, response.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, req.validate()
}

// processAddNoteReq binds the note body plus the :id URI param.
func (h *handler) processAddNoteReq(c *gin.Context) (addNoteReq, error) {
	var req addNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, response.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.ID = strings.TrimSpace(c.Param("id"))
	return req, req.validate()
}

func (h *handler) processAddBirthdayReq(c *gin.Context) (addBirthdayReq, error) {
	var req addBirthdayReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, response.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, req.validate()
}

// processSuggestReq accepts names as repeated or comma-separated query values.
func (h *handler) processSuggestReq(c *gin.Context) suggestReq {
	var req suggestReq
	for _, v := range c.QueryArray("names") {
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				req.Names = append(req.Names, n)
			}
		}
	}
	return req
}

func (h *handler) processAddCatchUpReq(c *gin.Context) (addCatchUpReq, error) {
	var req addCatchUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, response.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, req.validate()
}
