// Package export renders a vocabulary set as a PDF document.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"go_vocab_sets/internal/config"
	"go_vocab_sets/internal/model"
)

const (
	RendererTable    = "table"
	RendererMarkdown = "markdown"
)

// Document is everything a renderer needs for one set.
type Document struct {
	Set         model.VocabularySet
	Entries     []model.VocabEntry
	Owner       string
	GeneratedAt time.Time
}

// Renderer turns a Document into PDF bytes. Errors wrap model.ErrRender.
type Renderer interface {
	RenderSet(doc Document) ([]byte, error)
}

// utf8FontFamily is the family name the loaded font is registered under.
const utf8FontFamily = "vocab"

// ErrFontRequired is returned when no font is configured. The core PDF fonts
// have no Han glyphs, so words and pinyin would be lost.
var ErrFontRequired = errors.New("export.font_path is required: set a TrueType font with CJK glyphs")

// NewRenderer returns the renderer selected by export.renderer.
func NewRenderer(cfg config.ExportConfig) (Renderer, error) {
	if strings.TrimSpace(cfg.FontPath) == "" {
		return nil, ErrFontRequired
	}
	font, err := LoadFont(cfg.FontPath)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(cfg.Renderer) {
	case RendererTable, "":
		return NewTableRenderer(font), nil
	case RendererMarkdown:
		return NewMarkdownRenderer(font), nil
	default:
		return nil, fmt.Errorf("unknown export renderer %q", cfg.Renderer)
	}
}

// LoadFont reads a TrueType font file. Collections (.ttc) and CFF based
// OpenType fonts are rejected because fpdf can only embed glyf outlines.
func LoadFont(path string) ([]byte, error) {
	font, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("export.LoadFont: %w", err)
	}
	if len(font) < 4 {
		return nil, fmt.Errorf("export.LoadFont: %s: file too short", path)
	}
	switch sig := font[:4]; {
	case bytes.Equal(sig, []byte{0x00, 0x01, 0x00, 0x00}), bytes.Equal(sig, []byte("true")):
		return font, nil
	default:
		return nil, fmt.Errorf("export.LoadFont: %s: not a TrueType font (signature %q)", path, sig)
	}
}

// Filename builds the download name "<title>.pdf".
func Filename(title string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`/\"`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "vocabulary"
	}
	return name + ".pdf"
}

func starMark(starred bool) string {
	if starred {
		return "yes"
	}
	return ""
}

func renderError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", model.ErrRender, op, err)
}
