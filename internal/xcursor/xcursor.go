// xcursor forked from https://github.com/BurntSushi/xgbutil/blob/master/xcursor/xcursor.go
package xcursor

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Glyph is an index into the X core "cursor" font.
type Glyph uint16

const (
	Fleur   Glyph = 52
	LeftPtr Glyph = 68
	Sizing  Glyph = 120
	Watch   Glyph = 150
	XTerm   Glyph = 152
)

const fontName = "cursor"

type Color struct {
	Red   uint16
	Green uint16
	Blue  uint16
}

var (
	White = Color{Red: 0xffff, Green: 0xffff, Blue: 0xffff}
	Black = Color{}
)

// Create creates a white on black cursor from the glyph.
func Create(x *xgb.Conn, glyph Glyph) (xproto.Cursor, error) {
	return CreateColored(x, glyph, White, Black)
}

func CreateColored(x *xgb.Conn, glyph Glyph, fore, back Color) (xproto.Cursor, error) {
	fontId, err := xproto.NewFontId(x)
	if err != nil {
		return 0, err
	}

	cursorId, err := xproto.NewCursorId(x)
	if err != nil {
		return 0, err
	}

	err = xproto.OpenFontChecked(x, fontId,
		uint16(len(fontName)), fontName).Check()
	if err != nil {
		return 0, err
	}
	// The cursor keeps its own reference to the font.
	defer xproto.CloseFont(x, fontId)

	// The mask of a glyph is the next glyph in the font.
	err = xproto.CreateGlyphCursorChecked(x, cursorId, fontId, fontId,
		uint16(glyph), uint16(glyph)+1,
		fore.Red, fore.Green, fore.Blue,
		back.Red, back.Green, back.Blue).Check()
	if err != nil {
		return 0, err
	}

	return cursorId, nil
}
