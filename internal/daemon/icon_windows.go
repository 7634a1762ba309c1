//go:build windows
// +build windows

package daemon

import (
	"bytes"
	"encoding/binary"
)

const iconSize = 16

// getCalendarIcon returns a 16x16 32bpp .ico: a red page with a white date block
func getCalendarIcon() []byte {
	const (
		headerLen = 40
		pixelLen  = iconSize * iconSize * 4
		maskLen   = iconSize * 4 // 1bpp rows padded to 32 bits
	)

	var buf bytes.Buffer
	le := binary.LittleEndian

	// ICONDIR
	binary.Write(&buf, le, []uint16{0, 1, 1})
	// ICONDIRENTRY
	buf.Write([]byte{iconSize, iconSize, 0, 0})
	binary.Write(&buf, le, []uint16{1, 32})
	binary.Write(&buf, le, []uint32{headerLen + pixelLen + maskLen, 22})

	// BITMAPINFOHEADER, height doubled for the AND mask
	binary.Write(&buf, le, []uint32{headerLen, iconSize, iconSize * 2})
	binary.Write(&buf, le, []uint16{1, 32})
	binary.Write(&buf, le, []uint32{0, pixelLen, 0, 0, 0, 0})

	// Pixels, BGRA, bottom-up
	for y := iconSize - 1; y >= 0; y-- {
		for x := 0; x < iconSize; x++ {
			switch {
			case x >= 4 && x <= 11 && y >= 6 && y <= 12:
				buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF})
			default:
				buf.Write([]byte{0x1F, 0x1F, 0xE3, 0xFF})
			}
		}
	}

	buf.Write(make([]byte, maskLen))

	return buf.Bytes()
}
