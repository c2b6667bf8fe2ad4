// Package gauge draws the thermometer image for an assessment score.
package gauge

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/dshills/prtassess/internal/assessment"
)

// Canvas size in pixels.
const (
	Width  = 1000
	Height = 600
)

// Legend entries show this many characters of each explanation.
const legendExcerpt = 30

// Layout in canvas-relative units (0..1, y grows upward), scaled at draw time.
const (
	tubeX      = 0.30
	tubeBottom = 0.20
	tubeWidth  = 0.15
	tubeHeight = 0.60
	bulbRadius = tubeWidth / 1.5
)

var (
	background = color.RGBA{0xf8, 0xf9, 0xfa, 0xff}
	ink        = color.Black
	panel      = color.RGBA{0xff, 0xff, 0xff, 0xcc}
)

// Color returns the fill color for a bucket: red for low, orange for medium, green for high.
func Color(s assessment.Severity) color.Color {
	switch s {
	case assessment.SeverityLow:
		return color.RGBA{0xdc, 0x26, 0x26, 0xff}
	case assessment.SeverityMedium:
		return color.RGBA{0xf9, 0x73, 0x16, 0xff}
	case assessment.SeverityHigh:
		return color.RGBA{0x16, 0xa3, 0x4a, 0xff}
	default:
		return color.Gray{0x80}
	}
}

// Hex returns Color(s) as #rrggbb.
func Hex(s assessment.Severity) string {
	r, g, b, _ := Color(s).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

type fonts struct {
	regular *truetype.Font
	bold    *truetype.Font
}

var loadFonts = sync.OnceValues(func() (*fonts, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &fonts{regular: regular, bold: bold}, nil
})

func (f *fonts) face(bold bool, size float64) font.Face {
	tf := f.regular
	if bold {
		tf = f.bold
	}
	return truetype.NewFace(tf, &truetype.Options{Size: size})
}

// Render draws the gauge for pct and sev and returns it PNG-encoded.
func Render(pct float64, sev assessment.Severity) ([]byte, error) {
	if !sev.Valid() {
		return nil, fmt.Errorf("gauge.Render: %w: %q", assessment.ErrInvalidSeverity, sev)
	}
	if _, err := assessment.Classify(pct); err != nil {
		return nil, fmt.Errorf("gauge.Render: %w", err)
	}
	f, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("gauge.Render: %w", err)
	}

	dc := gg.NewContext(Width, Height)
	d := drawer{dc: dc, fonts: f}
	d.background()
	d.thermometer(pct, Color(sev))
	d.ticks()
	d.headline(pct, sev)
	d.explanation(assessment.Explain(sev))
	d.legend()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("gauge.Render: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI wraps PNG bytes for inline use in an <img> tag.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

type drawer struct {
	dc    *gg.Context
	fonts *fonts
}

// px converts relative coordinates to pixels, flipping y.
func (d drawer) px(x, y float64) (float64, float64) {
	return x * Width, (1 - y) * Height
}

func (d drawer) text(s string, x, y float64, ax, ay float64, bold bool, size float64) {
	d.dc.SetFontFace(d.fonts.face(bold, size))
	d.dc.SetColor(ink)
	px, py := d.px(x, y)
	d.dc.DrawStringAnchored(s, px, py, ax, ay)
}

func (d drawer) background() {
	d.dc.SetColor(background)
	d.dc.Clear()
	d.text("PRT ASSESSMENT RESULTS", 0.5, 0.95, 0.5, 0.5, true, 26)
}

func (d drawer) thermometer(pct float64, fill color.Color) {
	dc := d.dc
	left, top := d.px(tubeX, tubeBottom+tubeHeight)
	w, h := tubeWidth*Width, tubeHeight*Height
	cx, cy := d.px(tubeX+tubeWidth/2, tubeBottom)
	r := bulbRadius * Height

	filled := pct / 100 * h
	dc.SetColor(fill)
	dc.DrawRectangle(left, top+h-filled, w, filled)
	dc.Fill()
	dc.DrawCircle(cx, cy, r-0.01*Height)
	dc.Fill()

	dc.SetColor(ink)
	dc.SetLineWidth(2)
	dc.DrawRectangle(left, top, w, h)
	dc.Stroke()
	dc.DrawCircle(cx, cy, r)
	dc.Stroke()
}

func (d drawer) ticks() {
	d.dc.SetLineWidth(1)
	for i := 0; i <= 100; i += 20 {
		y := tubeBottom + float64(i)/100*tubeHeight
		x1, py := d.px(tubeX-0.02, y)
		x2, _ := d.px(tubeX, y)
		d.dc.SetColor(ink)
		d.dc.DrawLine(x1, py, x2, py)
		d.dc.Stroke()
		d.text(fmt.Sprintf("%d%%", i), tubeX-0.05, y, 1, 0.5, false, 13)
	}
}

func (d drawer) headline(pct float64, sev assessment.Severity) {
	x := tubeX + tubeWidth/2
	d.text("Severity: "+sev.Upper(), x, 0.90, 0.5, 0.5, true, 22)
	d.text(fmt.Sprintf("Score: %.1f%%", pct), x, 0.85, 0.5, 0.5, true, 19)
}

func (d drawer) explanation(text string) {
	dc := d.dc
	x, y := d.px(0.62, 0.75)
	boxW := 0.35 * Width

	dc.SetFontFace(d.fonts.face(false, 14))
	lines := dc.WordWrap(text, boxW-20)
	lineH := dc.FontHeight() * 1.4
	boxH := float64(len(lines))*lineH + 20

	dc.SetColor(panel)
	dc.DrawRoundedRectangle(x, y, boxW, boxH, 6)
	dc.Fill()
	dc.SetColor(ink)
	for i, line := range lines {
		dc.DrawStringAnchored(line, x+10, y+10+float64(i)*lineH, 0, 1)
	}
}

func (d drawer) legend() {
	y := 0.15
	for _, e := range assessment.Explanations() {
		x, py := d.px(0.55, y+0.02)
		d.dc.SetColor(Color(e.Severity))
		d.dc.DrawRectangle(x, py, 0.02*Width, 0.02*Height)
		d.dc.Fill()
		label := e.Severity.Upper() + ": " + assessment.Excerpt(e.Text, legendExcerpt)
		d.text(label, 0.58, y+0.01, 0, 0.5, false, 12)
		y -= 0.03
	}
}
