package chart

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	boxWidth  float32 = 150
	boxHeight float32 = 92
)

// AssetBox is the leaf widget showing one asset's name and price over a
// colored background. The symbol is immutable after construction; price and
// color change through UpdatePrice and UpdateColor.
type AssetBox struct {
	widget.BaseWidget

	symbol string
	price  float64

	bg        *canvas.Rectangle
	nameText  *canvas.Text
	priceText *canvas.Text

	// onClicked is the zero-argument clicked notification, wired by the
	// owning container.
	onClicked func()
}

// NewAssetBox builds a box for symbol, captioned with label (the symbol when
// label is empty). The symbol must be non-empty.
func NewAssetBox(symbol, label string, price float64, fill color.Color) (*AssetBox, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("asset box: empty symbol")
	}
	if strings.TrimSpace(label) == "" {
		label = symbol
	}

	b := &AssetBox{symbol: symbol, price: price}
	b.bg = canvas.NewRectangle(fill)
	b.bg.SetMinSize(fyne.NewSize(boxWidth, boxHeight))
	b.bg.CornerRadius = 6

	b.nameText = canvas.NewText(label, color.NRGBA{255, 255, 255, 255})
	b.nameText.TextStyle = fyne.TextStyle{Bold: true}
	b.nameText.Alignment = fyne.TextAlignCenter

	b.priceText = canvas.NewText(formatPrice(price), color.NRGBA{230, 230, 230, 255})
	b.priceText.TextSize = 18
	b.priceText.Alignment = fyne.TextAlignCenter

	b.ExtendBaseWidget(b)
	return b, nil
}

func (b *AssetBox) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewMax(
		b.bg,
		container.NewCenter(container.NewVBox(b.nameText, b.priceText)),
	)
	return widget.NewSimpleRenderer(content)
}

// AssetName returns the immutable asset identifier.
func (b *AssetBox) AssetName() string { return b.symbol }

// Price returns the currently displayed price.
func (b *AssetBox) Price() float64 { return b.price }

// Fill returns the current background color.
func (b *AssetBox) Fill() color.Color { return b.bg.FillColor }

// UpdatePrice replaces the displayed price and repaints the price label.
func (b *AssetBox) UpdatePrice(price float64) {
	b.price = price
	b.priceText.Text = formatPrice(price)
	b.priceText.Refresh()
}

// UpdateColor replaces the background color and repaints it.
func (b *AssetBox) UpdateColor(fill color.Color) {
	b.bg.FillColor = fill
	b.bg.Refresh()
}

// Tapped raises the clicked notification.
func (b *AssetBox) Tapped(_ *fyne.PointEvent) {
	if b.onClicked != nil {
		b.onClicked()
	}
}

// formatPrice renders a price with precision suited to its magnitude; sub-dollar
// assets keep more digits.
func formatPrice(p float64) string {
	switch {
	case p >= 1000:
		return fmt.Sprintf("$%.0f", p)
	case p >= 1:
		return fmt.Sprintf("$%.2f", p)
	default:
		return fmt.Sprintf("$%.6f", p)
	}
}

// ParseHexColor decodes "#RRGGBB" into an opaque color. Unparseable input
// yields a neutral gray.
func ParseHexColor(s string) color.NRGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{55, 71, 79, 255}
	}
	return color.NRGBA{r, g, b, 255}
}
