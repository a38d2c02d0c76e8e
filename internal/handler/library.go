package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/mediashelf/internal/middleware"
	"github.com/user/mediashelf/internal/model"
	"github.com/user/mediashelf/internal/utils"
)

// validStatus 内容类型与书架状态的合法组合
func validStatus(contentType, status string) bool {
	switch contentType {
	case model.ContentTypeMovie:
		return status == model.LibraryStatusWatched || status == model.LibraryStatusToWatch
	case model.ContentTypeBook:
		return status == model.LibraryStatusRead || status == model.LibraryStatusToRead
	}
	return false
}

type addLibraryRequest struct {
	ExternalID string `json:"external_id" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

// AddToLibrary 加入书架。同一内容不同状态各占一行；
// 首次加入才追加动态，重复加入只刷新时间。
func (h *Handler) AddToLibrary(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req addLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "external_id、type 和 status 都不能为空")
		return
	}
	if !validStatus(req.Type, req.Status) {
		utils.BadRequest(c, "无效的状态")
		return
	}

	content, err := h.Resolver.Resolve(req.Type, req.ExternalID)
	if err != nil {
		utils.InternalServerError(c, "内容详情暂时不可用")
		return
	}

	existing, err := h.Repos.Library.FindEntry(userID, content.ID, req.Status)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	entry, err := h.Repos.Library.Add(userID, content.ID, req.Status)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	if existing == nil {
		if _, err := h.Repos.Activity.Create(userID, model.ActivityTypeLibraryAdd, content.ID, nil, nil); err != nil {
			utils.InternalServerError(c, "")
			return
		}
		utils.Created(c, entry)
		return
	}
	utils.Success(c, entry)
}

// ListLibrary 当前用户书架，可按 status 过滤
func (h *Handler) ListLibrary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	status := c.Query("status")

	entries, err := h.Repos.Library.ListByUser(userID, status)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, entries)
}

// ListUserLibrary 某用户的书架，可按 status 过滤
func (h *Handler) ListUserLibrary(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	entries, err := h.Repos.Library.ListByUser(targetID, c.Query("status"))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, entries)
}

// LibraryStatusOf 某内容在当前用户书架上的状态列表
func (h *Handler) LibraryStatusOf(c *gin.Context) {
	userID := middleware.GetUserID(c)
	contentID, err := strconv.Atoi(c.Param("contentId"))
	if err != nil {
		utils.BadRequest(c, "无效的内容 ID")
		return
	}

	statuses, err := h.Repos.Library.StatusOf(userID, contentID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, gin.H{"statuses": statuses})
}

type updateLibraryRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateLibraryEntry 修改书架记录的状态（仅限本人）
func (h *Handler) UpdateLibraryEntry(c *gin.Context) {
	userID := middleware.GetUserID(c)
	entryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的书架记录 ID")
		return
	}

	var req updateLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "status 不能为空")
		return
	}

	switch req.Status {
	case model.LibraryStatusWatched, model.LibraryStatusToWatch,
		model.LibraryStatusRead, model.LibraryStatusToRead:
	default:
		utils.BadRequest(c, "无效的状态")
		return
	}

	updated, err := h.Repos.Library.UpdateStatus(userID, entryID, req.Status)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if !updated {
		utils.NotFound(c, "书架记录不存在")
		return
	}
	utils.SuccessWithMessage(c, "状态已更新", nil)
}

// RemoveFromLibrary 从书架移除（仅限本人）
func (h *Handler) RemoveFromLibrary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	entryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的书架记录 ID")
		return
	}

	removed, err := h.Repos.Library.Remove(userID, entryID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if !removed {
		utils.NotFound(c, "书架记录不存在")
		return
	}
	utils.SuccessWithMessage(c, "已从书架移除", nil)
}

// LibraryStats 当前用户书架分状态统计
func (h *Handler) LibraryStats(c *gin.Context) {
	userID := middleware.GetUserID(c)

	counts, err := h.Repos.Library.CountByStatus(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, counts)
}
