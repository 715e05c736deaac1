package handler

import (
	"net/http"
	"strconv"

	"Civic_Tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

type AddCommentReq struct {
	Text string `json:"text"`
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{
		svc: service.NewCommentService(),
	}
}

// Add 追加评论接口
func (h *CommentHandler) Add(c *gin.Context) {
	a := actor(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid complaint id"})
		return
	}

	var req AddCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	comment, err := h.svc.Add(c.Request.Context(), a.ID, id, req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}
