package models

// Коды ошибок для API-ответов.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeTokenInvalid = "TOKEN_INVALID"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeGeneration   = "GENERATION_FAILED"
	ErrCodeParse        = "PARSE_FAILED"
	ErrCodeValidation   = "VALIDATION_FAILED"
	ErrCodeStorage      = "STORAGE_FAILED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse - стандартная структура ответа об ошибке.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BaseResponse - стандартная обертка успешного ответа.
type BaseResponse struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// OK оборачивает данные в успешный ответ.
func OK(data interface{}) BaseResponse {
	return BaseResponse{Code: 0, Data: data, Message: "ok"}
}
