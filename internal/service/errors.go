package service

import "errors"

// 错误分类，handler 层据此映射 HTTP 状态码：
// validation->400  unauthenticated->401  unauthorized->403  not found->404  conflict->409
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("not permitted")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
)
