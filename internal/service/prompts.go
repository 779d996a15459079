package service

import (
	_ "embed"
	"fmt"

	"codegen-server/internal/models"
)

// Системные промпты режимов генерации зашиты в бинарь, чтобы сервис не
// зависел от рабочей директории.
var (
	//go:embed prompts/codegen_html_system.md
	htmlSystemPrompt string

	//go:embed prompts/codegen_multi_file_system.md
	multiFileSystemPrompt string
)

// systemPromptFor возвращает системный промпт для режима генерации.
func systemPromptFor(codeGenType models.CodeGenType) (string, error) {
	switch codeGenType {
	case models.CodeGenTypeHTML:
		return htmlSystemPrompt, nil
	case models.CodeGenTypeMultiFile:
		return multiFileSystemPrompt, nil
	default:
		return "", fmt.Errorf("%w: no system prompt for code gen type %q", models.ErrGeneration, codeGenType)
	}
}
