package collect

import (
	"benritz/bondyield/internal/types"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pbnjay/grate"
)

var SourceTrace = "TRACE"

// DefaultTraceReportURL is the daily corporate bond trade report export.
var DefaultTraceReportURL = "https://cdn.finra.org/bonddata/corporate/GetDataExport?reportCode=CB1D&exportFormatValue=xls"

// TraceReportCollector downloads the daily trade report workbook and
// parses one bond per row.
type TraceReportCollector struct {
	reportURL string
}

func NewTraceReportCollector() *TraceReportCollector {
	return &TraceReportCollector{reportURL: DefaultTraceReportURL}
}

func (c *TraceReportCollector) Collect(ctx context.Context, date time.Time) (*QuoteBatch, error) {
	params := fmt.Sprintf("&Trade Date=%02d-%02d-%04d", date.Day(), date.Month(), date.Year())
	reportURL := c.reportURL + "&parameters=" + url.QueryEscape(params)

	fmt.Printf("Fetching %s\n", reportURL)

	client := &http.Client{}

	req, err := http.NewRequestWithContext(ctx, "GET", reportURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get data: http %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "bond-*.xls")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, resp.Body)
	tmp.Close()
	if err != nil {
		return nil, err
	}

	fmt.Printf("Downloaded %d bytes to %s\n", size, tmp.Name())

	wb, err := grate.Open(tmp.Name())
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	batch := NewQuoteBatch(SourceTrace, date)
	parsed := 0

	sheets, err := wb.List()
	if err != nil {
		return nil, err
	}

	for _, sheetName := range sheets {
		sheet, err := wb.Get(sheetName)
		if err != nil {
			return nil, err
		}

		for sheet.Next() {
			row := sheet.Strings()
			cq, err := c.parseRow(date, row)
			if err == nil {
				batch.Add(cq)
				parsed++
			}
		}
	}

	if parsed == 0 {
		return nil, types.ErrDataUnavailable
	}

	return batch, nil
}

func (c *TraceReportCollector) Source() string {
	return SourceTrace
}

var (
	TR_COL_CUSIP      = 0
	TR_COL_DESC       = 1
	TR_COL_COUPON     = 2
	TR_COL_PRICE      = 3
	TR_COL_MATURITY   = 4
	TR_COL_CALL_DATE  = 5
	TR_COL_CALL_PRICE = 6
)

var cusipRe = regexp.MustCompile(`^[0-9A-Z]{9}$`)

// ValidCUSIP reports whether s looks like a 9-character CUSIP. Header and
// footer rows in the report fail this check and are skipped.
func ValidCUSIP(s string) bool {
	return cusipRe.MatchString(s)
}

func (c *TraceReportCollector) parseRow(date time.Time, row []string) (*CollectedQuote, error) {
	if len(row) <= TR_COL_MATURITY {
		return nil, ErrInvalidRow
	}

	cusip := strings.TrimSpace(row[TR_COL_CUSIP])

	if !ValidCUSIP(cusip) {
		return nil, ErrInvalidRow
	}

	b := types.NewCorporateBond(SourceTrace, date)
	b.CUSIP = cusip
	b.Desc = strings.TrimSpace(row[TR_COL_DESC])

	// floating-rate and convertible issues use different pricing
	desc := strings.ToLower(b.Desc)
	if strings.Contains(desc, "float") || strings.Contains(desc, "convertible") {
		return nil, types.ErrUnsupportedBond
	}

	cq := &CollectedQuote{Bond: b}

	if coupon, err := parsePercentage(row[TR_COL_COUPON]); err == nil {
		b.Coupon = coupon
	} else {
		cq.SetError(types.ErrInvalidCoupon)
	}

	if price, err := parsePrice(row[TR_COL_PRICE], b.FaceValue); err == nil {
		b.Price = price
	} else {
		cq.SetError(types.ErrInvalidPrice)
	}

	if ts, err := time.Parse("02-Jan-2006", strings.TrimSpace(row[TR_COL_MATURITY])); err == nil {
		b.MaturityDate = ts
	} else {
		cq.SetError(types.ErrInvalidMaturityDate)
	}

	// call columns are blank for bullet bonds
	if len(row) > TR_COL_CALL_PRICE {
		callDate := strings.TrimSpace(row[TR_COL_CALL_DATE])
		callPrice := strings.TrimSpace(row[TR_COL_CALL_PRICE])

		if callDate != "" || callPrice != "" {
			if ts, err := time.Parse("02-Jan-2006", callDate); err == nil {
				b.CallDate = ts
			} else {
				cq.SetError(types.ErrInvalidCallDate)
			}

			if price, err := parsePrice(callPrice, b.FaceValue); err == nil {
				b.CallPrice = price
			} else {
				cq.SetError(types.ErrInvalidCallPrice)
			}
		}
	}

	if cq.Err == nil {
		cq.Err = types.CompleteBond(b)
	}

	return cq, nil
}

// parsePercentage parses a coupon cell such as "5.25" or "5.25%".
func parsePercentage(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	return strconv.ParseFloat(s, 64)
}

// parsePrice parses a price cell quoted per 100 of face value and scales
// it to the bond's face amount.
func parsePrice(s string, faceValue float64) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")

	quoted, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return quoted / 100.0 * faceValue, nil
}
