package main

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"folio/internal/gallery"
	"folio/internal/metrics"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorLightRed  = color.RGBA{255, 150, 150, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128}
	bgColorMedium = color.RGBA{0, 0, 0, 160}
	bgColorDark   = color.RGBA{0, 0, 0, 220}
)

const (
	helpPadding     = 40.0
	minHelpFontSize = 8.0
)

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
}

// NewRenderer creates a new Renderer. InitGraphics must have been called.
func NewRenderer(renderState RenderState) *Renderer {
	return &Renderer{renderState: renderState}
}

func (r *Renderer) face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: globalFontSource, Size: size}
}

func screenRect(screen *ebiten.Image) gallery.Rect {
	b := screen.Bounds()
	return gallery.Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), W: float64(b.Dx()), H: float64(b.Dy())}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	viewport := screenRect(screen)

	if r.renderState.IsZoomed() {
		r.drawZoomOverlay(screen, viewport)
	} else if layout, ok := r.renderState.GetLayout(viewport); ok {
		screen.Fill(layout.Background)
		r.drawCurrentImage(screen, layout)
		for _, c := range r.renderState.GetControls(viewport) {
			DrawControl(screen, c)
		}
		if r.renderState.IsShowingInfo() {
			r.drawInfoDisplay(screen)
		}
	} else {
		// An empty gallery renders nothing
		screen.Fill(metrics.DefaultColor)
	}

	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}

	if r.renderState.GetOverlayMessage() != "" && time.Since(r.renderState.GetOverlayMessageTime()) < overlayMessageDuration {
		r.drawOverlayMessage(screen)
	}
}

// drawTextureIn scales img to fill dst, which callers have already fitted.
func drawTextureIn(screen, img *ebiten.Image, dst gallery.Rect) {
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	if iw == 0 || ih == 0 || dst.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(dst.W/iw, dst.H/ih)
	op.GeoM.Translate(dst.X, dst.Y)
	screen.DrawImage(img, op)
}

// textureRect places img inside slot. Until metrics resolve the slot is the
// wide default, so the texture's own aspect ratio decides the fit.
func textureRect(img *ebiten.Image, layout gallery.Layout) gallery.Rect {
	if layout.Orientation != gallery.OrientationUnknown {
		return layout.Image
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return layout.Slot
	}
	return gallery.Fit(layout.Slot, float64(w)/float64(h))
}

func (r *Renderer) drawCurrentImage(screen *ebiten.Image, layout gallery.Layout) {
	if img := r.renderState.GetCurrentTexture(); img != nil {
		drawTextureIn(screen, img, textureRect(img, layout))
		return
	}

	// Still loading: show the alt text where the image will go
	item, ok := r.renderState.GetCurrentItem()
	if !ok {
		return
	}
	face := r.face(r.renderState.GetFontSize())
	tw, th := text.Measure(item.AltText, face, 0)
	DrawText(screen, item.AltText, face, layout.Slot.X+(layout.Slot.W-tw)/2, layout.Slot.Y+(layout.Slot.H-th)/2, colorGray)
}

func (r *Renderer) drawZoomOverlay(screen *ebiten.Image, viewport gallery.Rect) {
	screen.Fill(color.Black)

	face := r.face(r.renderState.GetFontSize())
	caption := r.renderState.GetZoomItem().AltText
	_, th := text.Measure(caption, face, 0)
	margin := 10.0
	area := gallery.Rect{X: viewport.X + margin, Y: viewport.Y + margin, W: viewport.W - margin*2, H: viewport.H - th - margin*3}

	if img := r.renderState.GetZoomTexture(); img != nil {
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		if w > 0 && h > 0 {
			drawTextureIn(screen, img, gallery.Fit(area, float64(w)/float64(h)))
		}
	}

	tw, _ := text.Measure(caption, face, 0)
	DrawText(screen, caption, face, viewport.X+(viewport.W-tw)/2, viewport.Y+viewport.H-th-margin, colorWhite)
}

// getActionsList returns a sorted list of all actions that have bindings
func (r *Renderer) getActionsList() []string {
	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()

	actionSet := make(map[string]bool)
	for action, keys := range keybindings {
		if len(keys) > 0 {
			actionSet[action] = true
		}
	}
	for action, buttons := range mousebindings {
		if len(buttons) > 0 {
			actionSet[action] = true
		}
	}

	actions := make([]string, 0, len(actionSet))
	for action := range actionSet {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	return actions
}

// helpLine is one row of the help table
type helpLine struct {
	action, keys, mouse, description string
}

func (r *Renderer) helpLines() []helpLine {
	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()
	descriptions := GetActionDescriptions()

	var lines []helpLine
	for _, action := range r.getActionsList() {
		description := descriptions[action]
		if description == "" {
			description = "No description available"
		}
		lines = append(lines, helpLine{
			action:      action,
			keys:        strings.Join(keybindings[action], ", "),
			mouse:       strings.Join(mousebindings[action], ", "),
			description: description,
		})
	}
	return lines
}

func (r *Renderer) statusLines() []string {
	status := r.renderState.GetConfigStatus()
	lines := []string{fmt.Sprintf("Config Status: %s", status.Status)}
	for i, warning := range status.Warnings {
		if i >= 2 {
			break
		}
		lines = append(lines, "• "+truncate(warning, 60))
	}
	return lines
}

// helpColumns measures the column widths of the help table at face.
func helpColumns(lines []helpLine, face *text.GoTextFace) (actionW, inputW float64) {
	for _, l := range lines {
		w, _ := text.Measure(l.action, face, 0)
		actionW = max(actionW, w)
		w, _ = text.Measure(joinInputs(l), face, 0)
		inputW = max(inputW, w)
	}
	return actionW, inputW
}

func joinInputs(l helpLine) string {
	switch {
	case l.keys != "" && l.mouse != "":
		return l.keys + " | " + l.mouse
	case l.keys != "":
		return l.keys
	default:
		return l.mouse
	}
}

// requiredHelpSize returns the width and height the help table needs at fontSize.
func (r *Renderer) requiredHelpSize(fontSize float64) (float64, float64) {
	face := r.face(fontSize)
	lines := r.helpLines()
	actionW, inputW := helpColumns(lines, face)

	descW := 0.0
	for _, l := range lines {
		w, _ := text.Measure(l.description, face, 0)
		descW = max(descW, w)
	}

	lineHeight := fontSize * 1.5
	width := 40 + actionW + 50 + inputW + 20 + descW + 20
	// title, section header, actions, spacing, system header, status
	height := 30 + fontSize*2 + lineHeight*1.5 + lineHeight*float64(len(lines)) + lineHeight*2 + lineHeight*float64(len(r.statusLines()))
	return width, height
}

// helpFontSize finds the largest size up to the configured one that fits.
func (r *Renderer) helpFontSize(availableWidth, availableHeight float64) (float64, bool) {
	fits := func(size float64) bool {
		w, h := r.requiredHelpSize(size)
		return w <= availableWidth && h <= availableHeight
	}

	hi := r.renderState.GetFontSize()
	if fits(hi) {
		return hi, true
	}
	lo := minHelpFontSize
	if !fits(lo) {
		return 0, false
	}
	for hi-lo > 0.5 {
		mid := (lo + hi) / 2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, true
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	fontSize, ok := r.helpFontSize(w-helpPadding*2, h-helpPadding*2)
	if !ok {
		r.drawWindowTooSmallMessage(screen)
		return
	}

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, helpPadding, helpPadding, w-helpPadding*2, h-helpPadding*2, bgColorMedium)

	face := r.face(fontSize)
	lineHeight := fontSize * 1.5

	titleY := helpPadding + 30
	DrawText(screen, "HELP:", face, helpPadding+20, titleY, colorWhite)

	currentY := titleY + fontSize*2
	DrawText(screen, "Controls (Keyboard | Mouse):", face, helpPadding+20, currentY, colorWhite)
	currentY += lineHeight * 1.5

	lines := r.helpLines()
	actionW, inputW := helpColumns(lines, face)
	actionX := helpPadding + 40
	arrowX := actionX + actionW + 20
	inputX := arrowX + 30
	descX := inputX + inputW + 20

	for _, l := range lines {
		DrawText(screen, l.action, face, actionX, currentY, colorLightBlue)
		DrawText(screen, "→", face, arrowX, currentY, colorWhite)

		x := inputX
		if l.keys != "" {
			DrawText(screen, l.keys, face, x, currentY, colorYellow)
			kw, _ := text.Measure(l.keys, face, 0)
			x += kw
		}
		if l.keys != "" && l.mouse != "" {
			DrawText(screen, " | ", face, x, currentY, colorWhite)
			sw, _ := text.Measure(" | ", face, 0)
			x += sw
		}
		if l.mouse != "" {
			DrawText(screen, l.mouse, face, x, currentY, colorCyan)
		}

		DrawText(screen, l.description, face, descX, currentY, colorGray)
		currentY += lineHeight
	}

	currentY += lineHeight
	DrawText(screen, "System:", face, helpPadding+20, currentY, colorWhite)
	currentY += lineHeight

	status := r.renderState.GetConfigStatus()
	for i, line := range r.statusLines() {
		c := colorGreen
		switch {
		case i > 0:
			c = colorLightRed
		case status.Status == "Warning" || status.Status == "Error":
			c = colorOrange
		}
		DrawText(screen, line, face, helpPadding+40, currentY, c)
		currentY += lineHeight
	}
}

func (r *Renderer) drawWindowTooSmallMessage(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	DrawFilledRect(screen, 0, 0, w, h, bgColorDark)

	face := r.face(16)
	message := "Window too small for help"
	tw, th := text.Measure(message, face, 0)
	DrawText(screen, message, face, (w-tw)/2, (h-th)/2, colorWhite)
}

// buildInfoString describes the current image for the info display
func (r *Renderer) buildInfoString() string {
	parts := []string{r.renderState.GetCurrentPageNumber()}
	if r.renderState.IsCurrentFavorite() {
		parts = append(parts, "♥")
	}

	m := r.renderState.GetCurrentMetrics()
	switch {
	case m.Failed():
		parts = append(parts, "metrics unavailable")
	case m.Resolved:
		orientation := "landscape"
		if m.IsPortrait {
			orientation = "portrait"
		}
		parts = append(parts, fmt.Sprintf("%dx%d %s", m.Width, m.Height, orientation))
	}

	if item, ok := r.renderState.GetCurrentItem(); ok && item.AltText != "" {
		parts = append(parts, item.AltText)
	}
	return strings.Join(parts, "  ")
}

func (r *Renderer) drawInfoDisplay(screen *ebiten.Image) {
	infoFont := r.face(r.renderState.GetFontSize())
	infoText := r.buildInfoString()

	textWidth, textHeight := text.Measure(infoText, infoFont, 0)

	// Position at bottom right corner
	padding := 10.0
	textX := float64(screen.Bounds().Dx()) - textWidth - padding
	textY := float64(screen.Bounds().Dy()) - textHeight - padding

	bgPadding := 5.0
	DrawFilledRect(screen, textX-bgPadding, textY-bgPadding, textWidth+bgPadding*2, textHeight+bgPadding*2, bgColorLight)
	DrawText(screen, infoText, infoFont, textX, textY, colorWhite)
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image) {
	messageFont := r.face(r.renderState.GetFontSize())
	message := r.renderState.GetOverlayMessage()

	textWidth, textHeight := text.Measure(message, messageFont, 0)

	// Center of screen
	padding := 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, messageFont, boxX+padding, boxY+padding, colorWhite)
}
