package handler

import (
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/mediashelf/internal/middleware"
	"github.com/user/mediashelf/internal/model"
	"github.com/user/mediashelf/internal/utils"
)

// pageParams 解析分页参数
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// Feed 关注流：关注的人的动态，时间倒序分页。
// 一个人都没关注时直接返回空页，不打数据库。
func (h *Handler) Feed(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := pageParams(c)

	followingCount, err := h.Repos.Follow.CountFollowing(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if followingCount == 0 {
		utils.Success(c, gin.H{
			"activities": []model.FeedActivity{},
			"totalPages": 0,
			"page":       page,
		})
		return
	}

	total, err := h.Repos.Activity.CountFeed(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	rows, err := h.Repos.Activity.Feed(userID, limit, (page-1)*limit)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	activities := make([]model.FeedActivity, 0, len(rows))
	for i := range rows {
		activities = append(activities, rows[i].Format())
	}

	utils.Success(c, gin.H{
		"activities": activities,
		"totalPages": (total + int64(limit) - 1) / int64(limit),
		"page":       page,
	})
}

// UserTimeline 个人时间线：本人发的动态和点过的赞合并后按时间倒序。
// 合并在内存里做，分页也是切片之后的事。
func (h *Handler) UserTimeline(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}
	viewerID := middleware.GetUserID(c)
	page, limit := pageParams(c)

	target, err := h.Repos.User.FindByID(targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if target == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	rows, err := h.Repos.Activity.ListByUser(targetID, viewerID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	likeRows, err := h.Repos.Activity.ListLikesByUser(targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	merged := make([]model.FeedActivity, 0, len(rows)+len(likeRows))
	for i := range rows {
		merged = append(merged, rows[i].Format())
	}
	for i := range likeRows {
		merged = append(merged, likeRows[i].Format())
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	total := len(merged)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	utils.Success(c, gin.H{
		"activities": merged[start:end],
		"totalPages": (total + limit - 1) / limit,
		"page":       page,
	})
}
