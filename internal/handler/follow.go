package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/mediashelf/internal/middleware"
	"github.com/user/mediashelf/internal/utils"
)

// FollowUser 关注用户
func (h *Handler) FollowUser(c *gin.Context) {
	userID := middleware.GetUserID(c)
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	if targetID == userID {
		utils.BadRequest(c, "不能关注自己")
		return
	}

	target, err := h.Repos.User.FindByID(targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if target == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	exists, err := h.Repos.Follow.Exists(userID, targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if exists {
		utils.BadRequest(c, "已经关注过了")
		return
	}

	if _, err := h.Repos.Follow.Create(userID, targetID); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Created(c, gin.H{"following_id": targetID})
}

// UnfollowUser 取消关注，未关注时也返回成功
func (h *Handler) UnfollowUser(c *gin.Context) {
	userID := middleware.GetUserID(c)
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	if err := h.Repos.Follow.Delete(userID, targetID); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.SuccessWithMessage(c, "已取消关注", nil)
}

// ListFollowers 某用户的粉丝
func (h *Handler) ListFollowers(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	users, err := h.Repos.Follow.Followers(targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, users)
}

// ListFollowing 某用户关注的人
func (h *Handler) ListFollowing(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	users, err := h.Repos.Follow.Following(targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, users)
}

// FollowStatus 当前用户是否关注了某用户
func (h *Handler) FollowStatus(c *gin.Context) {
	userID := middleware.GetUserID(c)
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	exists, err := h.Repos.Follow.Exists(userID, targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, gin.H{"is_following": exists})
}
