package handler

import (
	"net/http"
	"strconv"

	"Civic_Tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	svc *service.VoteService
}

type CastVoteReq struct {
	VoteType string `json:"voteType"` // upvote / downvote
}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{
		svc: service.NewVoteService(),
	}
}

// Cast 投票接口：同方向再投一次即取消（开关语义）
func (h *VoteHandler) Cast(c *gin.Context) {
	a := actor(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid complaint id"})
		return
	}

	var req CastVoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	result, err := h.svc.Cast(c.Request.Context(), a.ID, id, req.VoteType)
	if err != nil {
		fail(c, err)
		return
	}
	// voted=false 表示本次把票取消了
	c.JSON(http.StatusOK, gin.H{"voted": result != "", "voteType": result})
}

// Counts 两个方向的票数（走缓存）
func (h *VoteHandler) Counts(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid complaint id"})
		return
	}
	up, down, err := h.svc.Counts(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upvotes": up, "downvotes": down})
}

// Current 当前用户对该投诉的投票方向
func (h *VoteHandler) Current(c *gin.Context) {
	a := actor(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid complaint id"})
		return
	}
	vt, err := h.svc.Current(c.Request.Context(), a.ID, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"voted": vt != "", "voteType": vt})
}
