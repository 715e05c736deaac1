package handler

import (
	"net/http"
	"strconv"

	"Civic_Tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type ComplaintHandler struct {
	svc     *service.ComplaintService
	viewSvc *service.ComplaintViewService
}

type LocationReq struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type CreateComplaintReq struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	IssueType   string       `json:"issueType"`
	Priority    string       `json:"priority"`
	Address     string       `json:"address"`
	Landmark    string       `json:"landmark"`
	Image       string       `json:"image"` // base64 或 URL
	Location    *LocationReq `json:"location"`
}

type UpdateComplaintReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IssueType   *string `json:"issueType"`
	Priority    *string `json:"priority"`
	Address     *string `json:"address"`
	Landmark    *string `json:"landmark"`
	Image       *string `json:"image"`
	Status      *string `json:"status"`
}

func NewComplaintHandler() *ComplaintHandler {
	return &ComplaintHandler{
		svc:     service.NewComplaintService(),
		viewSvc: service.NewComplaintViewService(),
	}
}

// List 全部投诉的聚合视图接口（公开）
func (h *ComplaintHandler) List(c *gin.Context) {
	views, err := h.viewSvc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Get 单条投诉详情接口（公开）
func (h *ComplaintHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid complaint id"})
		return
	}
	view, err := h.viewSvc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListMine 当前用户自己的投诉
func (h *ComplaintHandler) ListMine(c *gin.Context) {
	a := actor(c)
	views, err := h.viewSvc.ListByUser(c.Request.Context(), a.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Create 创建投诉接口
func (h *ComplaintHandler) Create(c *gin.Context) {
	a := actor(c)

	var req CreateComplaintReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	in := service.CreateComplaintInput{
		Title:       req.Title,
		Description: req.Description,
		IssueType:   req.IssueType,
		Priority:    req.Priority,
		Address:     req.Address,
		Landmark:    req.Landmark,
		Image:       req.Image,
	}
	if req.Location != nil {
		in.Lat = req.Location.Lat
		in.Lng = req.Location.Lng
	}

	complaint, err := h.svc.CreateComplaint(c.Request.Context(), a.ID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// Update 更新投诉接口（owner/管理员/被指派人）
func (h *ComplaintHandler) Update(c *gin.Context) {
	a := actor(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid complaint id"})
		return
	}

	var req UpdateComplaintReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	complaint, err := h.svc.UpdateComplaint(c.Request.Context(), a, id, service.UpdateComplaintInput{
		Title:       req.Title,
		Description: req.Description,
		IssueType:   req.IssueType,
		Priority:    req.Priority,
		Address:     req.Address,
		Landmark:    req.Landmark,
		Image:       req.Image,
		Status:      req.Status,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// Delete 删除投诉接口（owner/管理员）
func (h *ComplaintHandler) Delete(c *gin.Context) {
	a := actor(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid complaint id"})
		return
	}
	if err := h.svc.DeleteComplaint(c.Request.Context(), a, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// Stats 个人面板计数
func (h *ComplaintHandler) Stats(c *gin.Context) {
	a := actor(c)
	stats, err := h.svc.Stats(a.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
