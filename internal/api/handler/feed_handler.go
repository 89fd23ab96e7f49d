package handler

import (
    "strconv"
    "time"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/party-feed/internal/api/middleware"
    "github.com/d60-Lab/party-feed/pkg/response"
)

// GetFeed 个人时间线（相关性打分排序）
// @Summary 获取个人 feed
// @Tags 动态
// @Param limit query int false "数量上限" default(50)
// @Success 200 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) GetFeed(c *gin.Context) {
    limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
    posts, err := h.feedService.GetFeed(c.Request.Context(), middleware.UserID(c), limit)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"list": posts})
}

// ListHotspots 城市当前热点
// @Summary 当前小时的热点聚合
// @Tags 发现
// @Param city_id path string true "城市ID"
// @Success 200 {object} response.Response
// @Router /api/v1/cities/{city_id}/hotspots [get]
func (h *Handler) ListHotspots(c *gin.Context) {
    cells, err := h.hotspotRepo.ListActive(c.Request.Context(), c.Param("city_id"), time.Now().UTC())
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"list": cells})
}

// ListNotifications 通知收件箱
// @Summary 查询通知
// @Tags 通知
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
    page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
    pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    list, err := h.notificationRepo.ListByRecipient(c.Request.Context(), middleware.UserID(c), (page-1)*pageSize, pageSize)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ReadNotification 标记已读
// @Summary 通知标记已读
// @Tags 通知
// @Param id path string true "通知ID"
// @Success 200 {object} response.Response
// @Router /api/v1/notifications/{id}/read [post]
func (h *Handler) ReadNotification(c *gin.Context) {
    if err := h.notificationRepo.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, nil)
}
