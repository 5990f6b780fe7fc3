package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/animew/internal/middleware"
	"github.com/user/animew/internal/model"
	"github.com/user/animew/internal/utils"
)

type profileRequest struct {
	FullName    string `json:"fullName"`
	Avatar      string `json:"avatar"`
	Age         int    `json:"age" binding:"omitempty,gte=0"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Level       int    `json:"level" binding:"omitempty,gte=0"`
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

// GetProfile 当前用户的资料，带出账号信息
func (h *Handler) GetProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		c.Error(utils.NewAppError(400, "User ID not found"))
		return
	}

	profile, err := h.Repos.Profile.FindByUserID(userID)
	if err != nil {
		c.Error(err)
		return
	}
	if profile == nil {
		c.Error(utils.NewAppError(404, "Profile not found!"))
		return
	}

	user, err := h.Repos.User.FindByID(userID)
	if err != nil {
		c.Error(err)
		return
	}

	data := gin.H{"profile": profile}
	if user != nil {
		data["author"] = gin.H{"username": user.Username, "email": user.Email}
	}

	utils.Success(c, data)
}

// CreateProfile 创建资料，每个用户只允许一份
func (h *Handler) CreateProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		c.Error(utils.NewAppError(400, "User ID not found"))
		return
	}

	user, err := h.Repos.User.FindByID(userID)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(utils.NewAppError(404, "User not found!"))
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	existing, err := h.Repos.Profile.FindByUserID(userID)
	if err != nil {
		c.Error(err)
		return
	}
	if existing != nil {
		c.Error(utils.NewAppError(400, "Profile already exists"))
		return
	}

	profile := &model.Profile{
		UserID:      userID,
		FullName:    req.FullName,
		Avatar:      req.Avatar,
		Age:         req.Age,
		Address:     req.Address,
		Description: req.Description,
		Level:       req.Level,
	}

	if err := h.Repos.Profile.Create(profile); err != nil {
		c.Error(err)
		return
	}

	utils.Success(c, gin.H{"profile": profile})
}

// UpdateProfile 更新资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		c.Error(utils.NewAppError(400, "User ID not found"))
		return
	}

	user, err := h.Repos.User.FindByID(userID)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(utils.NewAppError(404, "User not found!"))
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	profile, err := h.Repos.Profile.UpdateByUserID(userID, map[string]interface{}{
		"full_name":   req.FullName,
		"avatar":      req.Avatar,
		"age":         req.Age,
		"address":     req.Address,
		"description": req.Description,
		"level":       req.Level,
	})
	if err != nil {
		c.Error(err)
		return
	}
	if profile == nil {
		c.Error(utils.NewAppError(404, "Profile not found!"))
		return
	}

	utils.Success(c, gin.H{"profile": profile})
}

// UpdateAvatar 单独更新头像
func (h *Handler) UpdateAvatar(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		c.Error(utils.NewAppError(400, "User ID not found"))
		return
	}

	var req avatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	if req.Avatar == "" {
		c.Error(utils.NewAppError(400, "No avatar URL provided"))
		return
	}

	profile, err := h.Repos.Profile.UpdateAvatar(userID, req.Avatar)
	if err != nil {
		c.Error(err)
		return
	}
	if profile == nil {
		c.Error(utils.NewAppError(404, "Profile not found!"))
		return
	}

	utils.Success(c, gin.H{"profile": profile})
}
