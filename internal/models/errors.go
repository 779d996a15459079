package models

import "errors"

// Ошибки конвейера генерации кода.
var (
	// ErrGeneration - вызов модели не удался или запрошен неизвестный режим.
	ErrGeneration = errors.New("ai code generation failed")
	// ErrParse - в сгенерированном тексте не нашлось обязательного контента.
	ErrParse = errors.New("generated code parse failed")
	// ErrValidation - распарсенный результат не прошел валидацию сохранения.
	ErrValidation = errors.New("code result validation failed")
	// ErrStorage - не удалось создать каталог или записать файл.
	ErrStorage = errors.New("code storage failed")
)

// Общие ошибки доменного слоя.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrAppNotFound    = errors.New("app not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input data")
	ErrInternalServer = errors.New("internal server error")
)

// Ошибки проверки токена (сам выпуск токенов - забота внешнего auth-сервиса).
var (
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
)
