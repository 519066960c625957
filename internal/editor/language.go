package editor

import (
	"path/filepath"
	"strings"
)

// Language identifiers.
const (
	LanguageMarkdown  = "markdown"
	LanguagePlaintext = "plaintext"
)

// DetectLanguage returns the language id for a file path based on its
// extension. Unknown extensions are plaintext.
func DetectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown", ".mkd", ".mdx":
		return LanguageMarkdown
	case ".go":
		return "go"
	case ".lua":
		return "lua"
	case ".py":
		return "python"
	case ".js":
		return "javascript"
	case ".ts":
		return "typescript"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case ".sh", ".bash":
		return "shellscript"
	default:
		return LanguagePlaintext
	}
}
