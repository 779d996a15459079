package models

import "fmt"

// CodeGenType определяет режим генерации кода приложения.
type CodeGenType string

const (
	// CodeGenTypeHTML - одиночный HTML-файл.
	CodeGenTypeHTML CodeGenType = "html"
	// CodeGenTypeMultiFile - набор HTML + CSS + JS.
	CodeGenTypeMultiFile CodeGenType = "multi_file"
	// CodeGenTypeProject - проектный режим (генерация через file-tool).
	// Конвейер генерации его пока не поддерживает.
	CodeGenTypeProject CodeGenType = "project"
)

// ParseCodeGenType возвращает известный режим генерации или ошибку.
func ParseCodeGenType(value string) (CodeGenType, error) {
	switch CodeGenType(value) {
	case CodeGenTypeHTML, CodeGenTypeMultiFile, CodeGenTypeProject:
		return CodeGenType(value), nil
	default:
		return "", fmt.Errorf("%w: unknown code gen type %q", ErrGeneration, value)
	}
}

// CodeResult - результат генерации кода: размеченное объединение
// одиночного HTML и многофайлового набора. Дискриминатор - поле Type.
// HTML обязателен для обоих режимов, CSS и JS имеют смысл только для
// CodeGenTypeMultiFile. После парсинга результат не изменяется.
type CodeResult struct {
	Type CodeGenType `json:"type"`
	HTML string      `json:"html"`
	CSS  string      `json:"css,omitempty"`
	JS   string      `json:"js,omitempty"`
}

// OutputDirName возвращает имя каталога материализации: {type}_{appId}.
func OutputDirName(codeGenType CodeGenType, appID int64) string {
	return fmt.Sprintf("%s_%d", codeGenType, appID)
}
