package receipt

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"cloud.google.com/go/civil"

	"github.com/iho/goreceipts/internal/domain"
)

// Title printed at the top of every receipt.
const Title = "RECIBO DE PAGO"

// Receipt is the display form of one record: every value printed in a block.
type Receipt struct {
	RecordID    string
	Number      string
	Date        string
	Tenant      string
	Unit        string
	Amount      string
	AmountWords string
	From        string
	To          string
}

// Concept is the "por concepto de" line of the receipt.
func (r Receipt) Concept() string {
	if r.Unit != "" {
		return fmt.Sprintf("renta del departamento %s desde %s hasta %s", r.Unit, r.From, r.To)
	}
	return fmt.Sprintf("renta desde %s hasta %s", r.From, r.To)
}

// BuildReceipt derives the display values of a printable record.
func BuildReceipt(r domain.Record, today civil.Date, number string) Receipt {
	return Receipt{
		RecordID:    r.ID,
		Number:      number,
		Date:        IssueDate(today),
		Tenant:      r.Tenant,
		Unit:        r.Unit,
		Amount:      FormatAmount(r.Amount.Decimal),
		AmountWords: AmountInWords(r.Amount.Decimal),
		From:        LongDate(r.PeriodStart),
		To:          LongDate(r.PeriodEnd),
	}
}

// SelectPrintable keeps the records that have a tenant, an amount and both
// period boundaries, in their original order.
func SelectPrintable(records []domain.Record) ([]domain.Record, error) {
	printable := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if r.IsPrintable() {
			printable = append(printable, r)
		}
	}

	if len(printable) == 0 {
		return nil, domain.ErrNoPrintableRecords
	}

	return printable, nil
}

// Summary describes a composed document.
type Summary struct {
	Pages    int
	Receipts []Receipt
}

// Composer lays printable records out as receipt blocks on pages.
type Composer struct {
	layout Layout
	now    func() time.Time
	intn   func(n int) int
}

// Option configures a Composer.
type Option func(*Composer)

// WithClock sets the source of the current date printed on receipts.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		c.now = now
	}
}

// WithRandom sets the source of the random part of receipt numbers.
func WithRandom(intn func(n int) int) Option {
	return func(c *Composer) {
		c.intn = intn
	}
}

// NewComposer creates a Composer for the given layout.
func NewComposer(layout Layout, opts ...Option) *Composer {
	c := &Composer{
		layout: layout,
		now:    time.Now,
		intn:   rand.IntN,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Layout returns the composer's layout.
func (c *Composer) Layout() Layout {
	return c.layout
}

// Compose draws one receipt block per record, in order, starting a new page
// whenever the current page's blocks are used up. Any backend failure aborts
// composition with domain.ErrRenderingFailure.
func (c *Composer) Compose(canvas Canvas, printable []domain.Record) (Summary, error) {
	if len(printable) == 0 {
		return Summary{}, domain.ErrNoPrintableRecords
	}

	if err := c.layout.Validate(); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", domain.ErrRenderingFailure, err)
	}

	w, h := canvas.PageSize()
	if math.Abs(w-c.layout.PageWidth) > 0.5 || math.Abs(h-c.layout.PageHeight) > 0.5 {
		return Summary{}, fmt.Errorf("%w: page is %.1fx%.1f mm, layout expects %.1fx%.1f mm",
			domain.ErrRenderingFailure, w, h, c.layout.PageWidth, c.layout.PageHeight)
	}

	today := civil.DateOf(c.now())
	perPage := c.layout.BlocksPerPage()
	draw := c.drawer()

	summary := Summary{Receipts: make([]Receipt, 0, len(printable))}
	slot := 0

	canvas.AddPage()
	summary.Pages = 1

	for _, r := range printable {
		if slot == perPage {
			canvas.AddPage()
			summary.Pages++
			slot = 0
		}

		rc := BuildReceipt(r, today, ReceiptNumber(today, c.intn(1000)))
		x, y := c.layout.Slot(slot)
		draw(canvas, x, y, c.layout.BlockWidth, c.layout.BlockHeight, rc)

		if err := canvas.Err(); err != nil {
			return Summary{}, fmt.Errorf("%w: receipt for %s: %w", domain.ErrRenderingFailure, r.ID, err)
		}

		summary.Receipts = append(summary.Receipts, rc)
		slot++
	}

	return summary, nil
}

type blockDrawer func(canvas Canvas, x, y, w, h float64, rc Receipt)

// Wide blocks get the decorated receipt; narrow grid cells the compact one.
func (c *Composer) drawer() blockDrawer {
	if c.layout.BlockWidth >= 150 {
		return drawDecorated
	}
	return drawCompact
}

var (
	inkColor    = Color{51, 51, 51}
	navyColor   = Color{25, 25, 112}
	steelColor  = Color{70, 130, 180}
	greyColor   = Color{100, 100, 100}
	ruleColor   = Color{150, 150, 150}
	headerColor = Color{240, 248, 255}
	blackColor  = Color{0, 0, 0}
)

func drawDecorated(canvas Canvas, x, y, w, h float64, rc Receipt) {
	bottom := y + h

	canvas.Rect(x, y, w, h, &Stroke{Color: inkColor, Width: 1.2}, nil)
	canvas.Rect(x, y, w, 20, nil, &headerColor)

	for _, p := range [][2]float64{{x + 5, y + 5}, {x + w - 5, y + 5}, {x + 5, bottom - 5}, {x + w - 5, bottom - 5}} {
		canvas.Circle(p[0], p[1], 2, steelColor)
	}

	cy := y + 8
	canvas.Text(x+w/2, cy, Title, TextOptions{
		Font: Font{Family: "Helvetica", Style: "B", Size: 18}, Color: navyColor, Align: AlignCenter,
	})
	canvas.Text(x+w-5, cy+5, "No. "+rc.Number, TextOptions{
		Font: Font{Family: "Helvetica", Size: 10}, Color: greyColor, Align: AlignRight,
	})

	cy += 18
	label := Font{Family: "Times", Style: "B", Size: 11}
	body := Font{Family: "Times", Size: 11}

	canvas.Text(x+8, cy, "Fecha:", TextOptions{Font: label, Color: inkColor})
	canvas.Text(x+25, cy, rc.Date, TextOptions{Font: body, Color: inkColor})
	canvas.Text(x+w/2, cy, "Recibí de:", TextOptions{Font: label, Color: inkColor})
	tenantLines := canvas.Text(x+w/2+25, cy, rc.Tenant, TextOptions{
		Font: Font{Family: "Times", Size: 12}, Color: inkColor, MaxWidth: w/2 - 33,
	})

	cy += 6 + float64(tenantLines-1)*DefaultLineHeight(12)
	canvas.Line(x+8, cy, x+w-8, cy, Stroke{Color: steelColor, Width: 0.5})

	cy += 6
	canvas.Text(x+8, cy, "La cantidad de:", TextOptions{Font: label, Color: inkColor})
	canvas.Text(x+45, cy, rc.Amount, TextOptions{
		Font: Font{Family: "Times", Style: "B", Size: 14}, Color: navyColor,
	})

	cy += 6
	wordLines := canvas.Text(x+8, cy, rc.AmountWords, TextOptions{
		Font: Font{Family: "Times", Style: "I", Size: 9}, Color: greyColor, MaxWidth: w - 16,
	})

	cy += 10 + float64(wordLines)*DefaultLineHeight(9)
	canvas.Text(x+8, cy, "Por concepto de", TextOptions{Font: label, Color: inkColor})
	cy += 6
	canvas.Text(x+8, cy, rc.Concept(), TextOptions{Font: body, Color: inkColor, MaxWidth: w - 16})

	canvas.Text(x+w-80, bottom-14, "Firma:", TextOptions{
		Font: Font{Family: "Times", Style: "B", Size: 10}, Color: inkColor,
	})
	canvas.Line(x+w-65, bottom-11, x+w-8, bottom-11, Stroke{Color: ruleColor, Width: 0.8})
}

func drawCompact(canvas Canvas, x, y, w, h float64, rc Receipt) {
	canvas.Rect(x, y, w, h, &Stroke{Color: blackColor, Width: 0.2}, nil)

	textX := x + 5
	maxW := w - 10
	body := Font{Family: "Helvetica", Size: 9}
	bodyLine := DefaultLineHeight(9)

	cy := y + 9
	canvas.Text(x+w/2, cy, Title, TextOptions{
		Font: Font{Family: "Helvetica", Style: "B", Size: 10}, Color: blackColor, Align: AlignCenter,
	})
	cy += 4.5
	canvas.Text(x+w/2, cy, "No. "+rc.Number, TextOptions{
		Font: Font{Family: "Helvetica", Size: 7}, Color: greyColor, Align: AlignCenter,
	})

	cy += 6
	canvas.Text(textX, cy, "Fecha: "+rc.Date, TextOptions{Font: body, Color: blackColor, MaxWidth: maxW})

	cy += 6
	tenant := "Recibí de: " + rc.Tenant
	if rc.Unit != "" {
		tenant += " (Depto. " + rc.Unit + ")"
	}
	n := canvas.Text(textX, cy, tenant, TextOptions{Font: body, Color: blackColor, MaxWidth: maxW})

	cy += 6 + float64(n-1)*bodyLine
	canvas.Text(textX, cy, "La cantidad de: "+rc.Amount, TextOptions{Font: body, Color: blackColor, MaxWidth: maxW})

	cy += 4.5
	n = canvas.Text(textX, cy, rc.AmountWords, TextOptions{
		Font: Font{Family: "Helvetica", Style: "I", Size: 7}, Color: greyColor, MaxWidth: maxW,
	})

	cy += 4 + float64(n)*DefaultLineHeight(7)
	canvas.Text(textX, cy, "Del período:", TextOptions{Font: body, Color: blackColor})
	cy += 5
	canvas.Text(textX+2, cy, "Desde: "+rc.From, TextOptions{Font: body, Color: blackColor, MaxWidth: maxW - 2})
	cy += 5
	canvas.Text(textX+2, cy, "Hasta: "+rc.To, TextOptions{Font: body, Color: blackColor, MaxWidth: maxW - 2})

	canvas.Text(textX, y+h-5-bodyLine, "Firma: ____________________", TextOptions{Font: body, Color: blackColor, MaxWidth: maxW})
}
