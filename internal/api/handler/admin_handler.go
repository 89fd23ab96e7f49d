package handler

import (
    "strconv"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/party-feed/internal/model"
    "github.com/d60-Lab/party-feed/pkg/response"
)

// ProcessQueue 手动触发一批事件处理（调度器也会周期调用同一入口）
// @Summary 处理一批队列事件
// @Tags 运维
// @Param limit query int false "认领上限" default(50)
// @Success 200 {object} response.Response
// @Router /api/v1/admin/queue/process [post]
func (h *Handler) ProcessQueue(c *gin.Context) {
    limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
    processed, total, err := h.dispatcher.ProcessBatch(c.Request.Context(), limit)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"processed": processed, "total": total})
}

// QueueStats 队列状态计数（failed 计数是运维观察终态失败的入口）
// @Summary 队列状态统计
// @Tags 运维
// @Success 200 {object} response.Response
// @Router /api/v1/admin/queue/stats [get]
func (h *Handler) QueueStats(c *gin.Context) {
    stats := make(map[string]int64, 4)
    for _, status := range []string{
        model.QueueStatusPending,
        model.QueueStatusProcessing,
        model.QueueStatusDone,
        model.QueueStatusFailed,
    } {
        cnt, err := h.queueRepo.CountByStatus(c.Request.Context(), status)
        if err != nil {
            response.InternalError(c, err)
            return
        }
        stats[status] = cnt
    }
    response.Success(c, stats)
}

// RunCleanup 手动触发保留期清理
// @Summary 清理过期数据
// @Tags 运维
// @Success 200 {object} response.Response
// @Router /api/v1/admin/cleanup [post]
func (h *Handler) RunCleanup(c *gin.Context) {
    deleted, err := h.sweeper.RunCleanup(c.Request.Context())
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, deleted)
}
