package ui

import (
	"fmt"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// LoadFont parses the embedded Go Regular typeface. The caller closes the
// returned source when the window goes away.
func LoadFont() (*text.FontSource, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("ui: load font: %w", err)
	}
	return src, nil
}
