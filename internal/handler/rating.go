package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/mediashelf/internal/middleware"
	"github.com/user/mediashelf/internal/model"
	"github.com/user/mediashelf/internal/utils"
)

type rateRequest struct {
	ExternalID string `json:"external_id" binding:"required"`
	Type       string `json:"type" binding:"required,content_type"`
	Score      int    `json:"score" binding:"required"`
}

// RateContent 打分（upsert）：已有评分就地更新，否则新建并追加动态。
// 评分和动态分两次写入，不在同一事务里（沿用现有产品行为）。
func (h *Handler) RateContent(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "external_id、type 和 score 都不能为空")
		return
	}
	if req.Score < 1 || req.Score > 10 {
		utils.BadRequest(c, "分数必须在 1 到 10 之间")
		return
	}

	content, err := h.Resolver.Resolve(req.Type, req.ExternalID)
	if err != nil {
		utils.InternalServerError(c, "内容详情暂时不可用")
		return
	}

	existing, err := h.Repos.Rating.FindByUserContent(userID, content.ID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	if existing != nil {
		if err := h.Repos.Rating.UpdateScore(existing.ID, req.Score); err != nil {
			utils.InternalServerError(c, "")
			return
		}
		existing.Score = req.Score
		utils.Success(c, existing)
		return
	}

	rating := &model.Rating{
		UserID:    userID,
		ContentID: content.ID,
		Score:     req.Score,
	}
	if err := h.Repos.Rating.Create(rating); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	// 新评分追加动态
	if _, err := h.Repos.Activity.Create(userID, model.ActivityTypeRating, content.ID, &rating.ID, nil); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Created(c, rating)
}

// GetMyRating 当前用户对某内容的评分
func (h *Handler) GetMyRating(c *gin.Context) {
	userID := middleware.GetUserID(c)
	contentID, err := strconv.Atoi(c.Param("contentId"))
	if err != nil {
		utils.BadRequest(c, "无效的内容 ID")
		return
	}

	rating, err := h.Repos.Rating.FindByUserContent(userID, contentID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rating == nil {
		utils.NotFound(c, "还没有打过分")
		return
	}
	utils.Success(c, rating)
}

// ListContentRatings 某内容的全部评分
func (h *Handler) ListContentRatings(c *gin.Context) {
	contentID, err := strconv.Atoi(c.Param("contentId"))
	if err != nil {
		utils.BadRequest(c, "无效的内容 ID")
		return
	}

	ratings, err := h.Repos.Rating.ListByContent(contentID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	average := 0.0
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Score
		}
		average = float64(sum) / float64(len(ratings))
	}

	utils.Success(c, gin.H{
		"ratings": ratings,
		"average": average,
		"count":   len(ratings),
	})
}

// DeleteRating 删除当前用户对某内容的评分
func (h *Handler) DeleteRating(c *gin.Context) {
	userID := middleware.GetUserID(c)
	contentID, err := strconv.Atoi(c.Param("contentId"))
	if err != nil {
		utils.BadRequest(c, "无效的内容 ID")
		return
	}

	deleted, err := h.Repos.Rating.Delete(userID, contentID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if !deleted {
		utils.NotFound(c, "评分不存在")
		return
	}
	utils.SuccessWithMessage(c, "评分已删除", nil)
}
