package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"codegen-server/internal/models"
)

// Имена файлов материализации. Общие для обоих режимов: одиночный HTML
// пишется в index.html, многофайловый набор добавляет style.css и script.js.
const (
	indexFileName  = "index.html"
	styleFileName  = "style.css"
	scriptFileName = "script.js"
)

// CodeSaver материализует результат генерации на диск в каталог
// {outputRoot}/{режим}_{appId}. Повторное сохранение перезаписывает
// существующие файлы.
type CodeSaver struct {
	outputRoot string
	logger     *zap.Logger
}

// NewCodeSaver создает сохранятор с корневым каталогом outputRoot.
func NewCodeSaver(outputRoot string, logger *zap.Logger) *CodeSaver {
	return &CodeSaver{
		outputRoot: outputRoot,
		logger:     logger.Named("CodeSaver"),
	}
}

// Save записывает файлы результата и возвращает абсолютный путь каталога.
// Пустые CSS/JS пропускаются; ранее записанные файлы при этом не трогаются.
func (s *CodeSaver) Save(result *models.CodeResult, appID int64) (string, error) {
	if result == nil {
		return "", fmt.Errorf("%w: нет результата для сохранения", models.ErrValidation)
	}
	if strings.TrimSpace(result.HTML) == "" {
		return "", fmt.Errorf("%w: HTML обязателен для сохранения", models.ErrValidation)
	}

	dir := filepath.Join(s.outputRoot, models.OutputDirName(result.Type, appID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: не удалось создать каталог %s: %v", models.ErrStorage, dir, err)
	}

	files := map[string]string{
		indexFileName: result.HTML,
	}
	if result.Type == models.CodeGenTypeMultiFile {
		files[styleFileName] = result.CSS
		files[scriptFileName] = result.JS
	}

	written := 0
	for name, content := range files {
		if strings.TrimSpace(content) == "" {
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("%w: не удалось записать %s: %v", models.ErrStorage, path, err)
		}
		written++
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		absDir = dir
	}

	s.logger.Info("Результат генерации сохранен",
		zap.Int64("appID", appID),
		zap.String("type", string(result.Type)),
		zap.String("dir", absDir),
		zap.Int("files", written))

	return absDir, nil
}
