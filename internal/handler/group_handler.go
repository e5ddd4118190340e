package handler

import (
	"net/http"
	"strconv"

	"Group_Hub/internal/repository/mysql"
	"Group_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	svc     *service.GroupService
	members *service.MembershipService
}

type GroupCreateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Capacity    *int   `json:"capacity"`
}

func NewGroupHandler() *GroupHandler {
	return &GroupHandler{
		svc:     service.NewGroupService(mysql.DB),
		members: service.NewMembershipService(mysql.DB),
	}
}

func (h *GroupHandler) Create(c *gin.Context) {
	userID := userIDFromCtx(c)

	var req GroupCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	group, err := h.svc.CreateGroup(userID, req.Name, req.Description, req.Capacity)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          group.ID,
		"name":        group.Name,
		"description": group.Description,
		"capacity":    group.Capacity,
	})
}

func (h *GroupHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	group, err := h.svc.GetGroup(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":             group.ID,
		"name":           group.Name,
		"description":    group.Description,
		"leader_id":      group.LeaderID,
		"capacity":       group.Capacity,
		"approved_count": group.ApprovedCount,
	})
}

func (h *GroupHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.ListGroups(page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *GroupHandler) Delete(c *gin.Context) {
	userID := userIDFromCtx(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.DeleteGroup(c.Request.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// Membership 查询自己在某小组的身份和申请状态
func (h *GroupHandler) Membership(c *gin.Context) {
	userID := userIDFromCtx(c)
	groupID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	membership, err := h.members.Classify(c.Request.Context(), userID, groupID)
	if err != nil {
		fail(c, err)
		return
	}
	status, err := h.members.GetStatus(c.Request.Context(), userID, groupID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"membership": membership.String(),
		"status":     status,
	})
}
