package collect

import (
	"benritz/bondyield/internal/types"
	"context"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

var (
	SourceBondView = "BondView"
)

// QuotePageCollector scrapes the callable bond prices page, which lists
// one bond per table row with its next call date and call price.
type QuotePageCollector struct {
}

func NewQuotePageCollector() *QuotePageCollector {
	return &QuotePageCollector{}
}

func (c *QuotePageCollector) Collect(ctx context.Context, date time.Time) (*QuoteBatch, error) {
	x := colly.NewCollector()

	// check page date matches requested date
	// the page is updated daily, but the data may not be available yet
	DATE_PREFIX := "Prices as of: "
	var dataTs time.Time

	x.OnHTML("label", func(e *colly.HTMLElement) {
		if strings.HasPrefix(e.Text, DATE_PREFIX) {
			s := strings.TrimPrefix(e.Text, DATE_PREFIX)
			dataTs, _ = time.Parse("02 Jan 2006", s)
		}
	})

	batch := NewQuoteBatch(SourceBondView, date)

	x.OnHTML("#mainbody tr", func(e *colly.HTMLElement) {
		cq := c.readBond(date, e)
		if cq != nil {
			batch.Add(cq)
		}
	})

	x.Visit("https://www.bondview.com/callable-bond-prices-yields.py")

	if dataTs.IsZero() {
		return nil, types.ErrInvalidQuoteDate
	}

	if !dataTs.Equal(date.Truncate(24 * time.Hour)) {
		return nil, types.ErrDataUnavailable
	}

	return batch, nil
}

func (c *QuotePageCollector) Source() string {
	return SourceBondView
}

var (
	BV_COL_TICKER     = 0
	BV_COL_DESC       = 1
	BV_COL_COUPON     = 2
	BV_COL_MATURITY   = 3
	BV_COL_CALL_DATE  = 4
	BV_COL_CALL_PRICE = 5
	BV_COL_PRICE      = 6
)

func (c *QuotePageCollector) readBond(date time.Time, e *colly.HTMLElement) *CollectedQuote {
	b := types.NewCorporateBond(SourceBondView, date)

	cq := &CollectedQuote{Bond: b}

	e.ForEach("td", func(col int, el *colly.HTMLElement) {
		switch col {
		case BV_COL_TICKER:
			b.Ticker = strings.TrimSpace(el.Text)
			if b.Ticker == "" {
				cq.SetError(types.ErrInvalidCUSIP)
			}
		case BV_COL_DESC:
			b.Desc = strings.TrimSpace(el.Text)
			if b.Desc == "" {
				cq.SetError(types.ErrInvalidDesc)
			}
		case BV_COL_COUPON:
			if coupon, err := parsePercentage(el.Text); err == nil {
				b.Coupon = coupon
			} else {
				cq.SetError(types.ErrInvalidCoupon)
			}
		case BV_COL_MATURITY:
			if ts, err := time.Parse("02-Jan-2006", strings.TrimSpace(el.Text)); err == nil {
				b.MaturityDate = ts
			} else {
				cq.SetError(types.ErrInvalidMaturityDate)
			}
		case BV_COL_CALL_DATE:
			// non-callable issues show a dash
			s := strings.TrimSpace(el.Text)
			if s == "" || s == "-" {
				return
			}
			if ts, err := time.Parse("02-Jan-2006", s); err == nil {
				b.CallDate = ts
			} else {
				cq.SetError(types.ErrInvalidCallDate)
			}
		case BV_COL_CALL_PRICE:
			s := strings.TrimSpace(el.Text)
			if s == "" || s == "-" {
				return
			}
			if price, err := parsePrice(s, b.FaceValue); err == nil {
				b.CallPrice = price
			} else {
				cq.SetError(types.ErrInvalidCallPrice)
			}
		case BV_COL_PRICE:
			if price, err := parsePrice(el.Text, b.FaceValue); err == nil {
				b.Price = price
			} else {
				cq.SetError(types.ErrInvalidPrice)
			}
		}
	})

	if cq.Err == nil {
		cq.Err = types.CompleteBond(b)
	}

	return cq
}
