package handler

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/mediashelf/internal/middleware"
	"github.com/user/mediashelf/internal/model"
	"github.com/user/mediashelf/internal/utils"
)

// GetProfile 个人页资料（带关注统计和查看者的关注状态）
func (h *Handler) GetProfile(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	profile, err := h.Repos.User.FindProfile(targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if profile == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	isFollowing := false
	if viewerID := middleware.GetUserID(c); viewerID > 0 && viewerID != targetID {
		isFollowing, _ = h.Repos.Follow.Exists(viewerID, targetID)
	}

	utils.Success(c, gin.H{
		"user":         profile,
		"is_following": isFollowing,
	})
}

// GetUserStats 用户统计：书架分状态数量、评分数、评论数
func (h *Handler) GetUserStats(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	counts, err := h.Repos.Library.CountByStatus(targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	var ratingCount, reviewCount int64
	if err := h.Repos.DB.Model(&model.Rating{}).Where("user_id = ?", targetID).Count(&ratingCount).Error; err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if err := h.Repos.DB.Model(&model.Review{}).Where("user_id = ?", targetID).Count(&reviewCount).Error; err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"library": counts,
		"ratings": ratingCount,
		"reviews": reviewCount,
	})
}

// SuggestedUsers 推荐关注：还没关注的人里粉丝最多的几位
func (h *Handler) SuggestedUsers(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit < 1 || limit > 20 {
		limit = 5
	}

	users, err := h.Repos.User.Suggestions(userID, limit)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, users)
}

// SearchUsers 用户名模糊搜索
func (h *Handler) SearchUsers(c *gin.Context) {
	userID := middleware.GetUserID(c)
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		utils.BadRequest(c, "请输入搜索关键词")
		return
	}

	users, err := h.Repos.User.Search(query, userID, 20)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, users)
}

type updateProfileRequest struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
}

// UpdateProfile 更新个人资料（用户名、简介）
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求格式有误")
		return
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if len(username) < 2 || len(username) > 30 {
			utils.BadRequest(c, "用户名应在 2-30 个字符之间")
			return
		}
		existing, _ := h.Repos.User.FindByUsername(username)
		if existing != nil && existing.ID != userID {
			utils.BadRequest(c, "该用户名已被使用")
			return
		}
		updates["username"] = username
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "没有要更新的字段")
		return
	}
	updates["updated_at"] = time.Now()

	if err := h.Repos.User.UpdateProfile(userID, updates); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	user, err := h.Repos.User.FindByID(userID)
	if err != nil || user == nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, user.Public())
}

// UploadAvatar 上传头像，保存到 uploads 目录
func (h *Handler) UploadAvatar(c *gin.Context) {
	userID := middleware.GetUserID(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		utils.BadRequest(c, "请选择要上传的图片")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		utils.BadRequest(c, "只支持 jpg/png/gif/webp 格式")
		return
	}
	if file.Size > 5<<20 {
		utils.BadRequest(c, "图片不能超过 5MB")
		return
	}

	filename := fmt.Sprintf("avatar-%d-%d%s", userID, time.Now().UnixNano(), ext)
	dst := filepath.Join("uploads", filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		utils.InternalServerError(c, "头像上传失败")
		return
	}

	avatarURL := "/uploads/" + filename
	if err := h.Repos.User.UpdateProfile(userID, map[string]interface{}{
		"avatar_url": avatarURL,
		"updated_at": time.Now(),
	}); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{"avatar_url": avatarURL})
}
