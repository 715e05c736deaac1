package handler

import (
	"net/http"
	"strconv"

	"Civic_Tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		svc: service.NewAdminService(),
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers()
	if err != nil {
		fail(c, err)
		return
	}
	// 不回传密码哈希
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":        u.ID,
			"name":      u.Name,
			"email":     u.Email,
			"role":      u.Role,
			"location":  u.Location,
			"createdAt": u.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// DeleteUser 删除用户并记操作日志
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	a := actor(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}
	if err := h.svc.DeleteUser(a.ID, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "user removed"})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) Logs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := h.svc.Logs(limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
