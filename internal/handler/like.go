package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/mediashelf/internal/middleware"
	"github.com/user/mediashelf/internal/utils"
)

type toggleLikeRequest struct {
	ActivityID int `json:"activity_id" binding:"required"`
}

// ToggleLike 点赞开关：已赞则取消，未赞则点上，返回最新状态和计数
func (h *Handler) ToggleLike(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req toggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "activity_id 不能为空")
		return
	}
	activityID := req.ActivityID

	activity, err := h.Repos.Activity.FindByID(activityID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if activity == nil {
		utils.NotFound(c, "动态不存在")
		return
	}

	liked, err := h.Repos.Like.Exists(userID, activityID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	if liked {
		err = h.Repos.Like.Delete(userID, activityID)
	} else {
		err = h.Repos.Like.Create(userID, activityID)
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	count, err := h.Repos.Like.CountForActivity(activityID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"liked":      !liked,
		"like_count": count,
	})
}

// LikeStatus 当前用户对某动态的点赞状态和计数
func (h *Handler) LikeStatus(c *gin.Context) {
	userID := middleware.GetUserID(c)
	activityID, err := strconv.Atoi(c.Param("activityId"))
	if err != nil {
		utils.BadRequest(c, "无效的动态 ID")
		return
	}

	liked, err := h.Repos.Like.Exists(userID, activityID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	count, err := h.Repos.Like.CountForActivity(activityID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"liked":      liked,
		"like_count": count,
	})
}
