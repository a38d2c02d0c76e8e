package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/mediashelf/internal/middleware"
	"github.com/user/mediashelf/internal/model"
	"github.com/user/mediashelf/internal/utils"
)

type createReviewRequest struct {
	ExternalID string `json:"external_id" binding:"required"`
	Type       string `json:"type" binding:"required,content_type"`
	ReviewText string `json:"review_text" binding:"required"`
}

// CreateReview 写评论（正文至少 10 个字符），成功后追加动态。
// 同一用户对同一内容可以发多条评论。
func (h *Handler) CreateReview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "external_id、type 和 review_text 都不能为空")
		return
	}

	// 校验放在内容解析之前，短评论不应产生任何写入
	if len(strings.TrimSpace(req.ReviewText)) < 10 {
		utils.BadRequest(c, "评论至少需要 10 个字符")
		return
	}

	content, err := h.Resolver.Resolve(req.Type, req.ExternalID)
	if err != nil {
		utils.InternalServerError(c, "内容详情暂时不可用")
		return
	}

	review := &model.Review{
		UserID:     userID,
		ContentID:  content.ID,
		ReviewText: req.ReviewText,
	}
	if err := h.Repos.Review.Create(review); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	if _, err := h.Repos.Activity.Create(userID, model.ActivityTypeReview, content.ID, nil, &review.ID); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Created(c, review)
}

// ListContentReviews 某内容的全部评论
func (h *Handler) ListContentReviews(c *gin.Context) {
	contentID, err := strconv.Atoi(c.Param("contentId"))
	if err != nil {
		utils.BadRequest(c, "无效的内容 ID")
		return
	}

	reviews, err := h.Repos.Review.ListByContent(contentID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, reviews)
}

// ListMyReviews 当前用户的全部评论
func (h *Handler) ListMyReviews(c *gin.Context) {
	userID := middleware.GetUserID(c)

	reviews, err := h.Repos.Review.ListByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, reviews)
}

// ListUserReviews 某用户的全部评论
func (h *Handler) ListUserReviews(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	reviews, err := h.Repos.Review.ListByUser(targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, reviews)
}

type updateReviewRequest struct {
	ReviewText string `json:"review_text" binding:"required"`
}

// UpdateReview 修改评论（仅限作者本人）
func (h *Handler) UpdateReview(c *gin.Context) {
	userID := middleware.GetUserID(c)
	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的评论 ID")
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "review_text 不能为空")
		return
	}
	if len(strings.TrimSpace(req.ReviewText)) < 10 {
		utils.BadRequest(c, "评论至少需要 10 个字符")
		return
	}

	review, err := h.Repos.Review.FindByID(reviewID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if review == nil {
		utils.NotFound(c, "评论不存在")
		return
	}
	if review.UserID != userID {
		utils.Forbidden(c, "只能修改自己的评论")
		return
	}

	if err := h.Repos.Review.UpdateText(reviewID, req.ReviewText); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	review.ReviewText = req.ReviewText
	utils.Success(c, review)
}

// DeleteReview 删除评论（仅限作者本人）
func (h *Handler) DeleteReview(c *gin.Context) {
	userID := middleware.GetUserID(c)
	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的评论 ID")
		return
	}

	review, err := h.Repos.Review.FindByID(reviewID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if review == nil {
		utils.NotFound(c, "评论不存在")
		return
	}
	if review.UserID != userID {
		utils.Forbidden(c, "只能删除自己的评论")
		return
	}

	if err := h.Repos.Review.Delete(reviewID); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.SuccessWithMessage(c, "评论已删除", nil)
}
