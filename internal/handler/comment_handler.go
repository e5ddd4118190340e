package handler

import (
	"net/http"
	"strconv"

	"Group_Hub/internal/repository/mysql"
	"Group_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

type CreateCommentReq struct {
	GroupID uint64 `json:"group_id" binding:"required"`
	Body    string `json:"body"`
}

type UpdateCommentReq struct {
	Body string `json:"body"`
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{
		svc: service.NewCommentService(mysql.DB),
	}
}

// Create 发评论，仅小组成员可用
func (h *CommentHandler) Create(c *gin.Context) {
	userID := userIDFromCtx(c)

	var req CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	cm, err := h.svc.CreateComment(c.Request.Context(), userID, req.GroupID, req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": cm.ID, "created_at": cm.CreatedAt})
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID := userIDFromCtx(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var req UpdateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.UpdateComment(c.Request.Context(), userID, id, req.Body); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID := userIDFromCtx(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.DeleteComment(c.Request.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// ListByGroup 小组评论列表，游标分页
func (h *CommentHandler) ListByGroup(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || groupID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid group id"})
		return
	}
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))

	list, next, err := h.svc.ListComments(c.Request.Context(), groupID, cursor, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list, "next_cursor": next})
}
