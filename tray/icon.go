package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
)

// The icon is a small microphone drawn at startup rather than shipped as
// an asset, mirroring the head/body/stand shape of the original artwork.
// White when idle, red while recording.

var (
	iconIdle = renderIcon(color.NRGBA{255, 255, 255, 255})
	iconRec  = renderIcon(color.NRGBA{255, 80, 80, 255})
)

const iconSize = 64

func renderIcon(fill color.NRGBA) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))

	fillEllipse(img, 20, 8, 44, 36, fill)  // mic head
	fillRect(img, 24, 28, 40, 42, fill)    // mic body
	drawArc(img, 32, 40, 16, 12, 3, fill)  // stand arc (lower half)
	fillRect(img, 31, 52, 34, 58, fill)    // stand line
	fillRect(img, 22, 57, 42, 60, fill)    // base

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func fillEllipse(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	cx := float64(x0+x1) / 2
	cy := float64(y0+y1) / 2
	rx := float64(x1-x0) / 2
	ry := float64(y1-y0) / 2
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy <= 1 {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// drawArc draws the bottom half of an ellipse outline centered at
// (cx, cy) with the given radii and stroke width.
func drawArc(img *image.NRGBA, cx, cy, rx, ry, width int, c color.NRGBA) {
	for i := 0; i <= 180; i++ {
		a := float64(i) * math.Pi / 180
		x := float64(cx) + float64(rx)*math.Cos(a)
		y := float64(cy) + float64(ry)*math.Sin(a)
		for w := 0; w < width; w++ {
			img.SetNRGBA(int(x), int(y)-w, c)
		}
	}
}
