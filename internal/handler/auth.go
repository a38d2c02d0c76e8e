package handler

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/mediashelf/internal/middleware"
	"github.com/user/mediashelf/internal/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=2,max=30"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "用户名、邮箱和密码都不能为空")
		return
	}

	if !emailPattern.MatchString(req.Email) {
		utils.BadRequest(c, "请输入有效的邮箱地址")
		return
	}
	if len(req.Password) < 6 {
		utils.BadRequest(c, "密码至少需要 6 个字符")
		return
	}

	// 检查邮箱是否已存在
	if existing, _ := h.Repos.User.FindByEmail(req.Email); existing != nil {
		utils.BadRequest(c, "该邮箱已被注册")
		return
	}
	// 检查用户名是否已存在
	if existing, _ := h.Repos.User.FindByUsername(req.Username); existing != nil {
		utils.BadRequest(c, "该用户名已被使用")
		return
	}

	user, err := h.Repos.User.Create(req.Username, req.Email, req.Password)
	if err != nil {
		utils.InternalServerError(c, "注册失败，请重试")
		return
	}

	token, err := middleware.GenerateToken(h.Config, user.ID, user.Email, user.Username)
	if err != nil {
		utils.InternalServerError(c, "注册失败，请重试")
		return
	}
	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)

	utils.Created(c, gin.H{
		"token": token,
		"user":  user.Public(),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "邮箱和密码都不能为空")
		return
	}

	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil || user == nil {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}
	if !h.Repos.User.CheckPassword(user, req.Password) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	token, err := middleware.GenerateToken(h.Config, user.ID, user.Email, user.Username)
	if err != nil {
		utils.InternalServerError(c, "登录失败，请重试")
		return
	}
	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)

	utils.Success(c, gin.H{
		"token": token,
		"user":  user.Public(),
	})
}

// Me 当前登录用户信息
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	user, err := h.Repos.User.FindByID(userID)
	if err != nil || user == nil {
		utils.Unauthorized(c, "")
		return
	}
	utils.Success(c, user.Public())
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	utils.SuccessWithMessage(c, "已退出登录", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword 发送密码重置验证码。
// 邮箱不存在时也返回成功，避免泄露注册信息。
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请输入邮箱地址")
		return
	}

	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.SuccessWithMessage(c, "如果该邮箱已注册，验证码将发送到您的邮箱", nil)
		return
	}

	code, err := generateResetCode()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	expires := time.Now().Add(3 * time.Minute)
	if err := h.Repos.User.SetResetToken(user.ID, code, expires); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	if err := h.Mailer.SendResetCode(user.Email, code); err != nil {
		// 邮件发送失败时回滚验证码
		_ = h.Repos.User.ClearResetToken(user.ID)
		utils.InternalServerError(c, "验证码发送失败，请稍后重试")
		return
	}

	utils.SuccessWithMessage(c, "如果该邮箱已注册，验证码将发送到您的邮箱", nil)
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword 用验证码重置密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "邮箱、验证码和新密码都不能为空")
		return
	}
	if len(req.NewPassword) < 6 {
		utils.BadRequest(c, "密码至少需要 6 个字符")
		return
	}

	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil || user.ResetToken == nil || *user.ResetToken != req.Code {
		utils.BadRequest(c, "验证码无效或已过期")
		return
	}
	if user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		utils.BadRequest(c, "验证码无效或已过期")
		return
	}

	if err := h.Repos.User.UpdatePassword(user.ID, req.NewPassword); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	_ = h.Repos.User.ClearResetToken(user.ID)

	utils.SuccessWithMessage(c, "密码已重置，请重新登录", nil)
}

// generateResetCode 生成 6 位数字验证码
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
