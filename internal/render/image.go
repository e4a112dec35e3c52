package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"eca/internal/core"
)

// Image renders a canvas with each cell drawn as a scale x scale block.
func Image(grid *core.ByteGrid, on, off color.Color, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	line := make([]byte, 4*grid.W)
	img := image.NewRGBA(image.Rect(0, 0, grid.W*scale, grid.H*scale))
	for y := 0; y < grid.H; y++ {
		fillBinaryRGBA(line, grid.Row(y), on, off)
		for sy := 0; sy < scale; sy++ {
			dst := img.Pix[(y*scale+sy)*img.Stride:]
			for x := 0; x < grid.W; x++ {
				px := line[4*x : 4*x+4]
				for sx := 0; sx < scale; sx++ {
					copy(dst[4*(x*scale+sx):], px)
				}
			}
		}
	}
	return img
}

// WritePNG encodes the canvas as a PNG.
func WritePNG(w io.Writer, grid *core.ByteGrid, scale int) error {
	if err := png.Encode(w, Image(grid, AliveColor, DeadColor, scale)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePGM writes the canvas as a binary greyscale PGM (P5), 0 for Alive
// and 255 for Dead.
func WritePGM(w io.Writer, grid *core.ByteGrid) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P5\n%d %d\n255\n", grid.W, grid.H); err != nil {
		return fmt.Errorf("write pgm header: %w", err)
	}
	for _, c := range grid.Cells() {
		v := byte(255)
		if c != 0 {
			v = 0
		}
		if err := bw.WriteByte(v); err != nil {
			return fmt.Errorf("write pgm pixels: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write pgm: %w", err)
	}
	return nil
}

// Text renders one generation as a line of alive and dead glyphs.
func Text(cells []uint8, alive, dead rune) string {
	out := make([]rune, len(cells))
	for i, c := range cells {
		out[i] = dead
		if c != 0 {
			out[i] = alive
		}
	}
	return string(out)
}
