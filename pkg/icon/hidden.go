package icon

import (
	"github.com/charlie0129/batticon/pkg/canvas"
	"github.com/charlie0129/batticon/pkg/style"
)

// hiddenPainter draws no battery, only the glyph.
type hiddenPainter struct{}

func (hiddenPainter) Paint(s canvas.Surface, _ *style.Resolved, inner *canvas.Pattern) {
	compositeGlyph(s, inner, canvas.OperatorOver)
}
