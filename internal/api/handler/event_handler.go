package handler

import (
    "time"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/party-feed/internal/api/middleware"
    "github.com/d60-Lab/party-feed/internal/model"
    "github.com/d60-Lab/party-feed/pkg/response"
)

type createEventRequest struct {
    Title    string    `json:"title" binding:"required,max=128"`
    CityID   string    `json:"city_id"`
    StartsAt time.Time `json:"starts_at" binding:"required"`
}

// CreateEvent 创建活动
// @Summary 创建活动
// @Tags 活动
// @Accept json
// @Produce json
// @Param request body createEventRequest true "活动信息"
// @Success 200 {object} response.Response
// @Router /api/v1/events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
    var req createEventRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    ev := &model.PartyEvent{
        CreatorID: middleware.UserID(c),
        Title:     req.Title,
        CityID:    req.CityID,
        StartsAt:  req.StartsAt,
    }
    if err := h.partyEventRepo.Create(c.Request.Context(), ev); err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"event_id": ev.ID})
}

type rsvpRequest struct {
    Status string `json:"status" binding:"required,rsvpstatus"`
}

// ChangeRSVP 报名 / 取消报名
// @Summary 变更活动报名状态
// @Tags 活动
// @Param event_id path string true "活动ID"
// @Param request body rsvpRequest true "报名状态"
// @Success 200 {object} response.Response
// @Router /api/v1/events/{event_id}/rsvp [post]
func (h *Handler) ChangeRSVP(c *gin.Context) {
    var req rsvpRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    if err := h.publisher.ChangeRSVP(c.Request.Context(), middleware.UserID(c), c.Param("event_id"), req.Status); err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, nil)
}
