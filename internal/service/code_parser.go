package service

import (
	"fmt"
	"regexp"
	"strings"

	"codegen-server/internal/models"
)

// Регекспы для извлечения fenced-блоков из ответа модели. Каждый блок
// ищется независимо, порядок блоков в тексте значения не имеет.
var (
	htmlBlockRegexp = regexp.MustCompile("(?s)```html\\s*\n(.*?)```")
	cssBlockRegexp  = regexp.MustCompile("(?s)```css\\s*\n(.*?)```")
	jsBlockRegexp   = regexp.MustCompile("(?s)```(?:js|javascript)\\s*\n(.*?)```")
)

// ParseCode извлекает код из полного текста ответа модели в соответствии
// с режимом генерации. Парсинг идемпотентен: повторный вызов на уже
// извлеченном тексте возвращает тот же результат.
func ParseCode(raw string, codeGenType models.CodeGenType) (*models.CodeResult, error) {
	switch codeGenType {
	case models.CodeGenTypeHTML:
		return parseHTMLCode(raw)
	case models.CodeGenTypeMultiFile:
		return parseMultiFileCode(raw)
	default:
		return nil, fmt.Errorf("%w: unsupported code gen type %q", models.ErrParse, codeGenType)
	}
}

// parseHTMLCode извлекает одиночный HTML-документ. Если модель обернула
// ответ в ```html блок - берем содержимое блока, иначе весь текст.
func parseHTMLCode(raw string) (*models.CodeResult, error) {
	html := raw
	if m := htmlBlockRegexp.FindStringSubmatch(raw); m != nil {
		html = m[1]
	}
	html = strings.TrimSpace(html)
	if html == "" {
		return nil, fmt.Errorf("%w: пустой HTML в ответе модели", models.ErrParse)
	}
	return &models.CodeResult{
		Type: models.CodeGenTypeHTML,
		HTML: html,
	}, nil
}

// parseMultiFileCode извлекает тройку HTML/CSS/JS. HTML обязателен,
// CSS и JS опциональны.
func parseMultiFileCode(raw string) (*models.CodeResult, error) {
	result := &models.CodeResult{Type: models.CodeGenTypeMultiFile}

	if m := htmlBlockRegexp.FindStringSubmatch(raw); m != nil {
		result.HTML = strings.TrimSpace(m[1])
	}
	if m := cssBlockRegexp.FindStringSubmatch(raw); m != nil {
		result.CSS = strings.TrimSpace(m[1])
	}
	if m := jsBlockRegexp.FindStringSubmatch(raw); m != nil {
		result.JS = strings.TrimSpace(m[1])
	}

	if result.HTML == "" {
		return nil, fmt.Errorf("%w: в ответе модели нет HTML-блока", models.ErrParse)
	}
	return result, nil
}
