package main

import (
	"bytes"
	"image/color"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"folio/internal/gallery"
)

// Global font source shared by the renderer and error images
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

func drawBorder(img *ebiten.Image, width, height int, thickness float64, c color.RGBA) {
	w, h := float64(width), float64(height)
	DrawFilledRect(img, 0, 0, w, thickness, c)
	DrawFilledRect(img, 0, h-thickness, w, thickness, c)
	DrawFilledRect(img, 0, 0, thickness, h, c)
	DrawFilledRect(img, w-thickness, 0, thickness, h, c)
}

func truncate(s string, maxChars int) string {
	if maxChars < 4 || len(s) <= maxChars {
		return s
	}
	return s[:maxChars-3] + "..."
}

// CreateErrorImage creates an error placeholder image with the source name and error message
func CreateErrorImage(width, height int, sourceURL, errorMsg string) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(color.RGBA{120, 30, 30, 255})
	drawBorder(errorImg, width, height, 3, colorWhite)

	if globalFontSource == nil {
		return errorImg
	}

	errorFont := &text.GoTextFace{
		Source: globalFontSource,
		Size:   20.0,
	}

	// Rough estimate: 10px per character
	maxChars := (width - 20) / 10
	DrawText(errorImg, "ERROR", errorFont, 10, 30, colorWhite)
	DrawText(errorImg, truncate("Source: "+path.Base(sourceURL), maxChars), errorFont, 10, 60, colorWhite)
	DrawText(errorImg, truncate("Reason: "+errorMsg, maxChars), errorFont, 10, 90, colorWhite)

	return errorImg
}

var (
	controlBackground = color.RGBA{0, 0, 0, 140}
	controlForeground = color.RGBA{240, 240, 240, 255}
	favoriteActive    = color.RGBA{235, 70, 90, 255}
)

// DrawControl draws one on-screen control as a round button with an icon.
func DrawControl(screen *ebiten.Image, c gallery.Control) {
	b := c.Bounds
	cx, cy := float32(b.X+b.W/2), float32(b.Y+b.H/2)
	r := float32(b.W / 2)
	vector.DrawFilledCircle(screen, cx, cy, r, controlBackground, true)

	s := r * 0.4
	switch c.Kind {
	case gallery.ControlPrevious:
		vector.StrokeLine(screen, cx+s/2, cy-s, cx-s/2, cy, 3, controlForeground, true)
		vector.StrokeLine(screen, cx-s/2, cy, cx+s/2, cy+s, 3, controlForeground, true)
	case gallery.ControlNext:
		vector.StrokeLine(screen, cx-s/2, cy-s, cx+s/2, cy, 3, controlForeground, true)
		vector.StrokeLine(screen, cx+s/2, cy, cx-s/2, cy+s, 3, controlForeground, true)
	case gallery.ControlFavorite:
		drawHeart(screen, cx, cy, s, c.Active)
	case gallery.ControlZoom:
		vector.StrokeCircle(screen, cx-s/4, cy-s/4, s*0.7, 3, controlForeground, true)
		vector.StrokeLine(screen, cx+s*0.25, cy+s*0.25, cx+s, cy+s, 3, controlForeground, true)
	}
}

// drawHeart fills the heart when active and outlines it otherwise.
func drawHeart(screen *ebiten.Image, cx, cy, s float32, active bool) {
	lobe := s * 0.5
	if active {
		vector.DrawFilledCircle(screen, cx-lobe, cy-lobe/2, lobe, favoriteActive, true)
		vector.DrawFilledCircle(screen, cx+lobe, cy-lobe/2, lobe, favoriteActive, true)

		var p vector.Path
		p.MoveTo(cx-s, cy-lobe/3)
		p.LineTo(cx+s, cy-lobe/3)
		p.LineTo(cx, cy+s)
		p.Close()
		vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
		for i := range vs {
			vs[i].SrcX, vs[i].SrcY = 1, 1
			vs[i].ColorR = float32(favoriteActive.R) / 255
			vs[i].ColorG = float32(favoriteActive.G) / 255
			vs[i].ColorB = float32(favoriteActive.B) / 255
			vs[i].ColorA = 1
		}
		screen.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
		return
	}

	vector.StrokeCircle(screen, cx-lobe, cy-lobe/2, lobe, 2, controlForeground, true)
	vector.StrokeCircle(screen, cx+lobe, cy-lobe/2, lobe, 2, controlForeground, true)
	vector.StrokeLine(screen, cx-s, cy-lobe/3, cx, cy+s, 2, controlForeground, true)
	vector.StrokeLine(screen, cx+s, cy-lobe/3, cx, cy+s, 2, controlForeground, true)
}

var whitePixelImage *ebiten.Image

// whitePixel is the source image for solid-colored triangles.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(3, 3)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage.SubImage(whitePixelImage.Bounds().Inset(1)).(*ebiten.Image)
}
