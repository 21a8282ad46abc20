// Package receipt renders a cart into fixed-width text for thermal printers.
package receipt

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"kiosk/internal/cart"
	"kiosk/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// DefaultWidth is the column count of a standard 58mm thermal roll.
	DefaultWidth = 40

	currencyGlyph = "₺"
	timeLayout    = "02.01.2006 15:04"
)

// Config controls the receipt layout.
type Config struct {
	Width    int
	Header   []string
	Footer   []string
	CutLines int
	Location *time.Location
}

// DefaultConfig returns the standard kiosk receipt layout.
func DefaultConfig() Config {
	return Config{
		Width:    DefaultWidth,
		Header:   []string{"ACME Restaurant", "Tel: (555) 123-4567"},
		Footer:   []string{"Bizi tercih ettiğiniz için teşekkürler!"},
		CutLines: 4,
		Location: time.Local,
	}
}

// Order carries the metadata printed under the header.
type Order struct {
	Number   string
	PlacedAt time.Time
}

// Formatter renders receipts. It holds no mutable state.
type Formatter struct {
	cfg Config
	now func() time.Time
}

// NewFormatter creates a formatter, filling unset fields from DefaultConfig.
func NewFormatter(cfg Config) *Formatter {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Header == nil {
		cfg.Header = def.Header
	}
	if cfg.Footer == nil {
		cfg.Footer = def.Footer
	}
	if cfg.CutLines < 0 {
		cfg.CutLines = 0
	}
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	return &Formatter{cfg: cfg, now: time.Now}
}

// Width returns the configured column count.
func (f *Formatter) Width() int {
	return f.cfg.Width
}

// GenerateReceipt renders a receipt stamped with the current time.
func (f *Formatter) GenerateReceipt(items []model.CartItem, total decimal.Decimal, orderNumber string) string {
	return f.Generate(items, total, Order{Number: orderNumber, PlacedAt: f.now()})
}

// Generate renders a receipt. The output depends only on its arguments: the
// same input always yields byte-identical text. total is printed as given and
// must be the cart's authoritative total.
func (f *Formatter) Generate(items []model.CartItem, total decimal.Decimal, order Order) string {
	var lines []string

	for _, text := range f.cfg.Header {
		lines = append(lines, f.center(text))
	}
	lines = append(lines, f.separator())

	lines = append(lines,
		f.fit("Sipariş No: "+order.Number),
		f.fit("Tarih: "+order.PlacedAt.In(f.cfg.Location).Format(timeLayout)),
	)
	lines = append(lines, f.separator())

	for _, item := range items {
		lines = append(lines, f.itemLine(item))
		if item.Product.IsCombo {
			lines = append(lines, f.comboLines(item)...)
		}
	}

	lines = append(lines, f.separator())
	lines = append(lines, f.right("TOPLAM: "+Money(total)))
	lines = append(lines, "")
	for _, text := range f.cfg.Footer {
		lines = append(lines, f.center(text))
	}
	for i := 0; i < f.cfg.CutLines; i++ {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n") + "\n"
}

// Money formats an amount with two decimals and the currency glyph.
// Extra digits are truncated, never rounded.
func Money(amount decimal.Decimal) string {
	return amount.Truncate(2).StringFixed(2) + currencyGlyph
}

// itemLine is "{qty}x " + name padded or truncated + " " + line total.
func (f *Formatter) itemLine(item model.CartItem) string {
	prefix := fmt.Sprintf("%dx ", item.Quantity)
	price := Money(cart.LineTotal(item))

	budget := f.cfg.Width - runeLen(prefix) - runeLen(price) - 1
	if budget < 0 {
		budget = 0
	}

	return truncate(prefix+padRight(truncate(item.Product.Name, budget), budget)+" "+price, f.cfg.Width)
}

func (f *Formatter) comboLines(item model.CartItem) []string {
	var lines []string
	seen := make(map[string]bool, len(item.Product.Combo))

	emit := func(groupName string) {
		selections := item.ComboSelections[groupName]
		var sub []string
		for _, sel := range selections {
			if sel.Quantity <= 0 {
				continue
			}
			sub = append(sub, f.fit(fmt.Sprintf("    %dx %s", sel.Quantity, sel.Item.MenuItemText)))
		}
		if len(sub) == 0 {
			return
		}
		lines = append(lines, f.fit("  "+groupName))
		lines = append(lines, sub...)
	}

	for _, group := range item.Product.Combo {
		seen[group.GroupName] = true
		emit(group.GroupName)
	}

	// Groups unknown to the product are printed last in name order.
	var rest []string
	for groupName := range item.ComboSelections {
		if !seen[groupName] {
			rest = append(rest, groupName)
		}
	}
	sort.Strings(rest)
	for _, groupName := range rest {
		emit(groupName)
	}

	return lines
}

func (f *Formatter) separator() string {
	return strings.Repeat("-", f.cfg.Width)
}

// center left-pads by floor((width - len) / 2).
func (f *Formatter) center(text string) string {
	text = truncate(text, f.cfg.Width)
	return strings.Repeat(" ", (f.cfg.Width-runeLen(text))/2) + text
}

func (f *Formatter) right(text string) string {
	text = truncate(text, f.cfg.Width)
	return strings.Repeat(" ", f.cfg.Width-runeLen(text)) + text
}

func (f *Formatter) fit(text string) string {
	return truncate(text, f.cfg.Width)
}

func truncate(text string, width int) string {
	if runeLen(text) <= width {
		return text
	}
	return string([]rune(text)[:width])
}

func padRight(text string, width int) string {
	if n := runeLen(text); n < width {
		return text + strings.Repeat(" ", width-n)
	}
	return text
}

func runeLen(text string) int {
	return utf8.RuneCountInString(text)
}
