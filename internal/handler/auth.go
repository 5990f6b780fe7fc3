package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/animew/internal/middleware"
	"github.com/user/animew/internal/model"
	"github.com/user/animew/internal/repository"
	"github.com/user/animew/internal/utils"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Register 注册：创建用户和空资料并签发 Token。
// 用户名/邮箱唯一性交给数据库约束，冲突由错误出口翻译。
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	if !validPassword(req.Password) {
		c.Error(utils.NewAppError(400, "Password must contain at least one lowercase letter, one uppercase letter, and one number!"))
		return
	}

	user, err := h.Repos.User.Create(req.Username, req.Email, req.Password, model.RolePublic)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.Repos.Profile.Create(&model.Profile{UserID: user.ID}); err != nil {
		c.Error(err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		c.Error(err)
		return
	}

	utils.Success(c, gin.H{"token": token, "username": user.Username})
}

// Login 登录：校验凭据、签发 Token，并把游客历史归并到账号名下
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.Repos.User.FindByCredential(req.Username, req.Email)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(utils.NewAppError(400, "The account does not exist. Please check your login credentials and try again!"))
		return
	}

	if !h.Repos.User.CheckPassword(user, req.Password) {
		c.Error(utils.NewAppError(400, "Invalid password!"))
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		c.Error(err)
		return
	}

	// 游客带着历史登录时做一次所有权转移，之后清掉游客 Cookie。
	// Cookie 值等于用户自身标识时没有游客历史可归并，只清 Cookie
	if guestID, cookieErr := c.Cookie(middleware.GuestCookieName); cookieErr == nil && guestID != "" {
		if guestID != repository.UserOwnerID(user.ID) {
			if err := h.Repos.History.ReassignGuest(guestID, user.ID); err != nil {
				c.Error(err)
				return
			}
		}
		middleware.ClearGuestCookie(c)
	}

	resp := utils.Response{
		StatusText: utils.StatusSuccess,
		Message:    "Login successful! Welcome back to your account.",
		Data:       gin.H{"token": token, "username": user.Username},
	}
	if user.Role == model.RoleAdmin {
		resp.RedirectURL = "/api/v1/admin"
	}

	c.JSON(http.StatusOK, resp)
}

// GetCurrentUser 当前用户概要，未登录时 user 为 null
func (h *Handler) GetCurrentUser(c *gin.Context) {
	data := gin.H{"user": nil}

	if userID := middleware.CurrentUserID(c); userID > 0 {
		user, err := h.Repos.User.FindByIDWithProfile(userID)
		if err != nil {
			c.Error(err)
			return
		}
		if user != nil {
			summary := gin.H{"username": user.Username}
			if user.Profile != nil {
				summary["avatar"] = user.Profile.Avatar
			}
			data["user"] = summary
		}
	}

	utils.Success(c, data)
}

// DeleteUser 删除账号，只允许本人或管理员操作
func (h *Handler) DeleteUser(c *gin.Context) {
	requesterID := middleware.CurrentUserID(c)
	if requesterID == 0 {
		c.Error(utils.NewAppError(400, "Unauthorized!!"))
		return
	}

	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}

	if requesterID != userID && middleware.CurrentRole(c) != model.RoleAdmin {
		c.Error(utils.NewAppError(400, "You are not authorized to perform this action!"))
		return
	}

	deleted, err := h.Repos.User.Delete(userID)
	if err != nil {
		c.Error(err)
		return
	}
	if deleted == nil {
		c.Error(utils.NewAppError(404, "User not found!"))
		return
	}

	utils.SuccessWithMessage(c,
		fmt.Sprintf("Account (%s) has been deleted", strings.ToUpper(deleted.Username)),
		gin.H{"token": ""})
}

// ListUsers 用户列表（管理端）
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Repos.User.ListAll()
	if err != nil {
		c.Error(err)
		return
	}

	utils.Success(c, gin.H{"users": users})
}

// validPassword 密码需要至少一个小写字母、一个大写字母和一个数字
func validPassword(s string) bool {
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}
