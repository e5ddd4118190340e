package handler

import (
	"net/http"
	"strconv"

	"Group_Hub/internal/repository/mysql"
	"Group_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentLikeHandler struct {
	svc *service.CommentLikeService
}

func NewCommentLikeHandler() *CommentLikeHandler {
	return &CommentLikeHandler{
		svc: service.NewCommentLikeService(mysql.DB),
	}
}

func (h *CommentLikeHandler) Like(c *gin.Context) {
	uid := userIDFromCtx(c)
	cid, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	changed, err := h.svc.Like(c.Request.Context(), uid, cid)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "changed": changed})
}

func (h *CommentLikeHandler) Unlike(c *gin.Context) {
	uid := userIDFromCtx(c)
	cid, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	changed, err := h.svc.Unlike(c.Request.Context(), uid, cid)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "changed": changed})
}

func (h *CommentLikeHandler) IsLiked(c *gin.Context) {
	uid := userIDFromCtx(c)
	cid, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	liked, err := h.svc.IsLiked(c.Request.Context(), uid, cid)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "liked": liked})
}

func (h *CommentLikeHandler) Count(c *gin.Context) {
	uid := userIDFromCtx(c)
	cid, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	cnt, err := h.svc.GetCountWithLock(c.Request.Context(), uid, cid)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "count": cnt})
}
