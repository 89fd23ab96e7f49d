package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/party-feed/internal/api/middleware"
    "github.com/d60-Lab/party-feed/internal/service"
    "github.com/d60-Lab/party-feed/pkg/response"
)

type publishRequest struct {
    Content      string   `json:"content" binding:"required"`
    PostType     string   `json:"post_type" binding:"omitempty,oneof=standard live_moment"`
    AudioTrackID string   `json:"audio_track_id"`
    LocationName string   `json:"location_name"`
    Latitude     *float64 `json:"latitude" binding:"omitempty,latitude"`
    Longitude    *float64 `json:"longitude" binding:"omitempty,longitude"`
    CityID       string   `json:"city_id"`
}

// PublishPost 发帖（同事务投递 post_created 事件）
// @Summary 发布动态
// @Tags 动态
// @Accept json
// @Produce json
// @Param request body publishRequest true "动态内容"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) PublishPost(c *gin.Context) {
    var req publishRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    postID, err := h.publisher.PublishPost(c.Request.Context(), service.PublishInput{
        AuthorID:     middleware.UserID(c),
        Content:      req.Content,
        PostType:     req.PostType,
        AudioTrackID: req.AudioTrackID,
        LocationName: req.LocationName,
        Latitude:     req.Latitude,
        Longitude:    req.Longitude,
        CityID:       req.CityID,
    })
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"post_id": postID})
}

// LikePost 点赞
// @Summary 点赞动态
// @Tags 动态
// @Param post_id path string true "动态ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{post_id}/like [post]
func (h *Handler) LikePost(c *gin.Context) {
    if err := h.publisher.AddLike(c.Request.Context(), middleware.UserID(c), c.Param("post_id")); err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, nil)
}

type commentRequest struct {
    Content string `json:"content" binding:"required"`
}

// CommentPost 评论
// @Summary 评论动态
// @Tags 动态
// @Param post_id path string true "动态ID"
// @Param request body commentRequest true "评论内容"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{post_id}/comments [post]
func (h *Handler) CommentPost(c *gin.Context) {
    var req commentRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    commentID, err := h.publisher.AddComment(c.Request.Context(), middleware.UserID(c), c.Param("post_id"), req.Content)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"comment_id": commentID})
}
