package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/manotham-cc/RAG-Orchestrator/pkg/logger_i"
)

// Converter turns a document on disk into plain text. Implementations must
// return empty text (not an error) only when the document genuinely has no
// content - the pipeline treats empty output as a parse failure.
type Converter interface {
	Convert(path string) (string, error)
}

type DocParser struct {
	logger *logger_i.Logger
}

func NewDocParser() *DocParser {
	return &DocParser{logger: logger_i.NewLogger("Parser")}
}

// Convert dispatches on extension. PDFs go through the page extractor with a
// per-page timeout guard; docx/odt/rtf/txt/md are read as a single block.
func (p *DocParser) Convert(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		pages, err := p.extractPDF(path)
		if err != nil {
			return "", err
		}
		return strings.Join(pages, "\n\n"), nil
	case ".docx", ".odt", ".rtf", ".txt", ".md":
		return p.extractTextual(path)
	default:
		return "", fmt.Errorf("unsupported document type: %s", ext)
	}
}
