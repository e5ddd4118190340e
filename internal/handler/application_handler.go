package handler

import (
	"net/http"
	"strconv"

	"Group_Hub/internal/repository/mysql"
	"Group_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	svc *service.ApplicationService
}

type ApplyReq struct {
	GroupID uint64 `json:"group_id" binding:"required"`
}

func NewApplicationHandler() *ApplicationHandler {
	return &ApplicationHandler{
		svc: service.NewApplicationService(mysql.DB),
	}
}

// Apply 提交入组申请
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID := userIDFromCtx(c)

	var req ApplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	app, err := h.svc.Apply(c.Request.Context(), userID, req.GroupID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         app.ID,
		"group_id":   app.GroupID,
		"status":     app.Status,
		"applied_at": app.AppliedAt,
	})
}

// Cancel 撤销自己的申请
func (h *ApplicationHandler) Cancel(c *gin.Context) {
	userID := userIDFromCtx(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.Cancel(c.Request.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "cancelled"})
}

// Approve 组长审批通过
func (h *ApplicationHandler) Approve(c *gin.Context) {
	userID := userIDFromCtx(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.Approve(c.Request.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "approved"})
}

// Reject 组长拒绝
func (h *ApplicationHandler) Reject(c *gin.Context) {
	userID := userIDFromCtx(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.Reject(c.Request.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "rejected"})
}

// ListByGroup 组长查看申请列表，?status=0/1/2 过滤，缺省全部
func (h *ApplicationHandler) ListByGroup(c *gin.Context) {
	userID := userIDFromCtx(c)
	groupID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	status := int8(-1)
	if v := c.Query("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 2 {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid status"})
			return
		}
		status = int8(n)
	}
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.ListByGroup(c.Request.Context(), userID, groupID, status, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
