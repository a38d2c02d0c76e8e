package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/mediashelf/internal/middleware"
	"github.com/user/mediashelf/internal/model"
	"github.com/user/mediashelf/internal/repository"
	"github.com/user/mediashelf/internal/utils"
)

type createListRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"is_public"`
}

// CreateList 新建片单，默认公开
func (h *Handler) CreateList(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req createListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "片单名称不能为空")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.BadRequest(c, "片单名称不能为空")
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	list := &model.List{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    isPublic,
	}
	if err := h.Repos.List.Create(list); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Created(c, list)
}

// ListMyLists 当前用户的全部片单
func (h *Handler) ListMyLists(c *gin.Context) {
	userID := middleware.GetUserID(c)

	lists, err := h.Repos.List.ListByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, lists)
}

// ListUserLists 某用户的片单。外人只能看到公开的。
func (h *Handler) ListUserLists(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}
	viewerID := middleware.GetUserID(c)

	lists, err := h.Repos.List.ListByUser(targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if viewerID != targetID {
		visible := make([]repository.ListSummary, 0, len(lists))
		for _, l := range lists {
			if l.IsPublic {
				visible = append(visible, l)
			}
		}
		lists = visible
	}
	utils.Success(c, lists)
}

// GetList 片单详情。私有片单只有主人能看。
func (h *Handler) GetList(c *gin.Context) {
	listID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的片单 ID")
		return
	}

	detail, err := h.Repos.List.Detail(listID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if detail == nil {
		utils.NotFound(c, "片单不存在")
		return
	}
	if !detail.IsPublic && detail.UserID != middleware.GetUserID(c) {
		utils.Forbidden(c, "该片单未公开")
		return
	}
	utils.Success(c, detail)
}

type addListItemRequest struct {
	ExternalID string `json:"external_id" binding:"required"`
	Type       string `json:"type" binding:"required,content_type"`
}

// AddListItem 往片单加内容（仅限主人，重复加入报错）
func (h *Handler) AddListItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	listID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的片单 ID")
		return
	}

	var req addListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "external_id 和 type 都不能为空")
		return
	}

	list, err := h.Repos.List.FindByID(listID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if list == nil {
		utils.NotFound(c, "片单不存在")
		return
	}
	if list.UserID != userID {
		utils.Forbidden(c, "只能编辑自己的片单")
		return
	}

	content, err := h.Resolver.Resolve(req.Type, req.ExternalID)
	if err != nil {
		utils.InternalServerError(c, "内容详情暂时不可用")
		return
	}

	exists, err := h.Repos.List.HasItem(listID, content.ID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if exists {
		utils.BadRequest(c, "该内容已在片单里")
		return
	}

	if err := h.Repos.List.AddItem(listID, content.ID); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Created(c, gin.H{"list_id": listID, "content_id": content.ID})
}

// RemoveListItem 从片单移除内容（仅限主人）
func (h *Handler) RemoveListItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	listID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的片单 ID")
		return
	}
	contentID, err := strconv.Atoi(c.Param("contentId"))
	if err != nil {
		utils.BadRequest(c, "无效的内容 ID")
		return
	}

	list, err := h.Repos.List.FindByID(listID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if list == nil {
		utils.NotFound(c, "片单不存在")
		return
	}
	if list.UserID != userID {
		utils.Forbidden(c, "只能编辑自己的片单")
		return
	}

	removed, err := h.Repos.List.RemoveItem(listID, contentID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if !removed {
		utils.NotFound(c, "片单里没有这个内容")
		return
	}
	utils.SuccessWithMessage(c, "已从片单移除", nil)
}

// DeleteList 删除片单及其条目（仅限主人）
func (h *Handler) DeleteList(c *gin.Context) {
	userID := middleware.GetUserID(c)
	listID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的片单 ID")
		return
	}

	list, err := h.Repos.List.FindByID(listID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if list == nil {
		utils.NotFound(c, "片单不存在")
		return
	}
	if list.UserID != userID {
		utils.Forbidden(c, "只能删除自己的片单")
		return
	}

	if err := h.Repos.List.Delete(listID); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.SuccessWithMessage(c, "片单已删除", nil)
}
