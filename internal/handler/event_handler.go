package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/escrow/internal/store"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	journal *store.EventJournal
}

func NewEventHandler(journal *store.EventJournal) *EventHandler {
	return &EventHandler{journal: journal}
}

// GetProjectEvents 按项目分页查询事件日志
func (h *EventHandler) GetProjectEvents(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	events, total, err := h.journal.ListByProject(id, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"events":    events,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
