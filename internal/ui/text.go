package ui

import (
	"bytes"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	fontSource *text.GoTextFaceSource
	boldSource *text.GoTextFaceSource
	fontFaces  map[faceKey]*text.GoTextFace
)

type faceKey struct {
	size float64
	bold bool
}

// InitFonts loads the regular and bold faces. bold may be nil.
func InitFonts(regular, bold []byte) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(regular))
	if err != nil {
		return err
	}
	fontSource = src
	boldSource = src
	if bold != nil {
		b, err := text.NewGoTextFaceSource(bytes.NewReader(bold))
		if err != nil {
			return err
		}
		boldSource = b
	}
	fontFaces = make(map[faceKey]*text.GoTextFace)
	return nil
}

func GetFace(size float64) *text.GoTextFace {
	return getFace(faceKey{size: size})
}

func GetBoldFace(size float64) *text.GoTextFace {
	return getFace(faceKey{size: size, bold: true})
}

func getFace(k faceKey) *text.GoTextFace {
	if face, ok := fontFaces[k]; ok {
		return face
	}
	src := fontSource
	if k.bold {
		src = boldSource
	}
	face := &text.GoTextFace{
		Source: src,
		Size:   k.size,
	}
	fontFaces[k] = face
	return face
}

func DrawText(dst *ebiten.Image, txt string, x, y float64, size float64, clr color.Color) {
	drawWithFace(dst, txt, GetFace(size), x, y, clr)
}

func DrawBoldText(dst *ebiten.Image, txt string, x, y float64, size float64, clr color.Color) {
	drawWithFace(dst, txt, GetBoldFace(size), x, y, clr)
}

func drawWithFace(dst *ebiten.Image, txt string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, txt, face, op)
}

func DrawTextCentered(dst *ebiten.Image, txt string, cx, cy float64, size float64, clr color.Color) {
	face := GetFace(size)
	w, h := text.Measure(txt, face, 0)
	DrawText(dst, txt, cx-w/2, cy-h/2, size, clr)
}

func MeasureText(txt string, size float64) (float64, float64) {
	face := GetFace(size)
	return text.Measure(txt, face, 0)
}

func MeasureBoldText(txt string, size float64) (float64, float64) {
	return text.Measure(txt, GetBoldFace(size), 0)
}

// WrapLines breaks txt into lines no wider than maxWidth.
func WrapLines(txt string, face *text.GoTextFace, maxWidth float64) []string {
	words := strings.Fields(txt)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		test := line + " " + word
		w, _ := text.Measure(test, face, 0)
		if w > maxWidth {
			lines = append(lines, line)
			line = word
		} else {
			line = test
		}
	}
	return append(lines, line)
}

// LineHeight is the line advance used by the wrapped text helpers.
func LineHeight(size float64) float64 {
	return size * 1.4
}

func DrawTextWrapped(dst *ebiten.Image, txt string, x, y, maxWidth float64, size float64, clr color.Color) float64 {
	lines := WrapLines(txt, GetFace(size), maxWidth)
	cy := y
	for _, line := range lines {
		DrawText(dst, line, x, cy, size, clr)
		cy += LineHeight(size)
	}
	return cy - y
}

// DrawTextWrappedCentered centers each wrapped line on cx.
func DrawTextWrappedCentered(dst *ebiten.Image, txt string, cx, y, maxWidth float64, face *text.GoTextFace, clr color.Color) float64 {
	lines := WrapLines(txt, face, maxWidth)
	lh := LineHeight(face.Size)
	cy := y
	for _, line := range lines {
		w, _ := text.Measure(line, face, 0)
		drawWithFace(dst, line, face, cx-w/2, cy, clr)
		cy += lh
	}
	return cy - y
}
