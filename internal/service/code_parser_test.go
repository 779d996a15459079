package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codegen-server/internal/models"
	"codegen-server/internal/service"
)

func TestParseCode_HTML_FencedBlock(t *testing.T) {
	raw := "Вот ваше приложение:\n```html\n<!DOCTYPE html>\n<html><body>Hello</body></html>\n```\nГотово."

	result, err := service.ParseCode(raw, models.CodeGenTypeHTML)
	require.NoError(t, err)

	assert.Equal(t, models.CodeGenTypeHTML, result.Type)
	assert.Equal(t, "<!DOCTYPE html>\n<html><body>Hello</body></html>", result.HTML)
	assert.Empty(t, result.CSS)
	assert.Empty(t, result.JS)
}

func TestParseCode_HTML_NoFence(t *testing.T) {
	raw := "<!DOCTYPE html>\n<html><body>Plain</body></html>"

	result, err := service.ParseCode(raw, models.CodeGenTypeHTML)
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html>\n<html><body>Plain</body></html>", result.HTML)
}

func TestParseCode_HTML_Idempotent(t *testing.T) {
	raw := "```html\n<html><body>Once</body></html>\n```"

	first, err := service.ParseCode(raw, models.CodeGenTypeHTML)
	require.NoError(t, err)

	// Повторный парсинг уже извлеченного текста дает тот же результат
	second, err := service.ParseCode(first.HTML, models.CodeGenTypeHTML)
	require.NoError(t, err)
	assert.Equal(t, first.HTML, second.HTML)
}

func TestParseCode_HTML_Empty(t *testing.T) {
	_, err := service.ParseCode("   \n  ", models.CodeGenTypeHTML)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrParse)
}

func TestParseCode_MultiFile_AllBlocks(t *testing.T) {
	raw := "```html\n<html><body>App</body></html>\n```\n" +
		"```css\nbody { color: red; }\n```\n" +
		"```js\nconsole.log('hi');\n```"

	result, err := service.ParseCode(raw, models.CodeGenTypeMultiFile)
	require.NoError(t, err)

	assert.Equal(t, models.CodeGenTypeMultiFile, result.Type)
	assert.Equal(t, "<html><body>App</body></html>", result.HTML)
	assert.Equal(t, "body { color: red; }", result.CSS)
	assert.Equal(t, "console.log('hi');", result.JS)
}

func TestParseCode_MultiFile_OrderIndependent(t *testing.T) {
	// Блоки в произвольном порядке извлекаются одинаково
	raw := "```js\nlet x = 1;\n```\n" +
		"```html\n<html></html>\n```\n" +
		"```css\n.a {}\n```"

	result, err := service.ParseCode(raw, models.CodeGenTypeMultiFile)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", result.HTML)
	assert.Equal(t, ".a {}", result.CSS)
	assert.Equal(t, "let x = 1;", result.JS)
}

func TestParseCode_MultiFile_JavascriptAlias(t *testing.T) {
	raw := "```html\n<html></html>\n```\n```javascript\nalert(1);\n```"

	result, err := service.ParseCode(raw, models.CodeGenTypeMultiFile)
	require.NoError(t, err)
	assert.Equal(t, "alert(1);", result.JS)
}

func TestParseCode_MultiFile_HTMLOnly(t *testing.T) {
	raw := "```html\n<html><body>Only</body></html>\n```"

	result, err := service.ParseCode(raw, models.CodeGenTypeMultiFile)
	require.NoError(t, err)
	assert.NotEmpty(t, result.HTML)
	assert.Empty(t, result.CSS)
	assert.Empty(t, result.JS)
}

func TestParseCode_MultiFile_MissingHTML(t *testing.T) {
	raw := "```css\nbody {}\n```\n```js\nvoid 0;\n```"

	_, err := service.ParseCode(raw, models.CodeGenTypeMultiFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrParse)
}

func TestParseCode_UnsupportedType(t *testing.T) {
	_, err := service.ParseCode("<html></html>", models.CodeGenTypeProject)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrParse)
}
