package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/party-feed/internal/api/middleware"
    "github.com/d60-Lab/party-feed/internal/model"
    "github.com/d60-Lab/party-feed/pkg/response"
)

type registerRequest struct {
    Username string `json:"username" binding:"required,min=2,max=32"`
    Email    string `json:"email" binding:"required,email"`
    Password string `json:"password" binding:"required,min=6"`
    Age      int    `json:"age" binding:"omitempty,gte=0"`
}

// Register 注册
// @Summary 注册用户
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
    var req registerRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    user := &model.User{Username: req.Username, Email: req.Email, Age: req.Age}
    if err := user.SetPassword(req.Password); err != nil {
        response.InternalError(c, err)
        return
    }
    if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    response.Success(c, gin.H{"id": user.ID})
}

type loginRequest struct {
    Username string `json:"username" binding:"required"`
    Password string `json:"password" binding:"required"`
}

// Login 登录换取 token
// @Summary 登录
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
    var req loginRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    user, err := h.userRepo.GetByUsername(c.Request.Context(), req.Username)
    if err != nil || !user.CheckPassword(req.Password) {
        response.Unauthorized(c, "invalid credentials")
        return
    }
    token, err := middleware.IssueToken(h.jwtCfg, user.ID)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"token": token})
}
