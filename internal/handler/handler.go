package handler

import (
	"errors"
	"net/http"

	"Civic_Tracker/internal/middleware"
	"Civic_Tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// fail 把服务层错误分类映射成 HTTP 状态码
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}

// actor 从中间件注入的上下文取身份三元组
func actor(c *gin.Context) service.Actor {
	idAny, _ := c.Get(middleware.ContextUserIDKey)
	roleAny, _ := c.Get(middleware.ContextUserRoleKey)
	nameAny, _ := c.Get(middleware.ContextUserNameKey)

	a := service.Actor{}
	if id, ok := idAny.(uint64); ok {
		a.ID = id
	}
	if role, ok := roleAny.(int); ok {
		a.Role = role
	}
	if name, ok := nameAny.(string); ok {
		a.Name = name
	}
	return a
}
