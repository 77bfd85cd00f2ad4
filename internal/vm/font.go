package vm

import "github.com/retroenv/retrogolib/arch/cpu/chip8"

const (
	// FontStart is the memory address of the first glyph.
	FontStart = 0x000
	// FontGlyphSize is the number of bytes, and rows, of a single glyph.
	FontGlyphSize = 5
)

// fontset contains the built-in hexadecimal digit glyphs 0-F, taken from
// the memory of a freshly initialized reference CHIP-8 CPU.
var fontset = loadFontset()

func loadFontset() [16 * FontGlyphSize]byte {
	var font [16 * FontGlyphSize]byte
	copy(font[:], chip8.New().Memory[FontStart:])
	return font
}

// Fontset returns a copy of the built-in glyph table.
func Fontset() []byte {
	font := make([]byte, len(fontset))
	copy(font, fontset[:])
	return font
}
