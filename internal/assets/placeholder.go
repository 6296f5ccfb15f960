package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	placeholderName = "default.png"
	borderWidth     = 2
)

var (
	textColor   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	borderColor = color.RGBA{R: 80, G: 80, B: 80, A: 255}
)

// Placeholder описывает изображение-заглушку
type Placeholder struct {
	Kind       Kind
	Text       string
	Width      int
	Height     int
	Background color.RGBA
}

// Placeholders - заглушки, которые фронтенд показывает при отсутствии изображения
var Placeholders = []Placeholder{
	{Kind: KindTeam, Text: "Team Logo", Width: 100, Height: 50, Background: color.RGBA{R: 30, G: 30, B: 30, A: 255}},
	{Kind: KindDriver, Text: "Driver", Width: 60, Height: 60, Background: color.RGBA{R: 40, G: 40, B: 40, A: 255}},
}

// Render рисует заглушку: фон, текст по центру и рамку.
func (p Placeholder) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: p.Background}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: face,
	}
	textWidth := d.MeasureString(p.Text).Round()
	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Round()
	x := (p.Width - textWidth) / 2
	y := (p.Height-textHeight)/2 + metrics.Ascent.Round()
	d.Dot = fixed.P(x, y)
	d.DrawString(p.Text)

	drawBorder(img, borderColor, borderWidth)
	return img
}

func drawBorder(img *image.RGBA, c color.Color, width int) {
	b := img.Bounds()
	for i := 0; i < width; i++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, b.Min.Y+i, c)
			img.Set(x, b.Max.Y-1-i, c)
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			img.Set(b.Min.X+i, y, c)
			img.Set(b.Max.X-1-i, y, c)
		}
	}
}

// Write сохраняет заглушку как <dir>/<kind>/default.png и возвращает путь к файлу.
func (p Placeholder) Write(dir string) (string, error) {
	path := filepath.Join(dir, string(p.Kind), placeholderName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, p.Render()); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
