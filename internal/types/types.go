package types

import (
	"fmt"
	"math"
	"time"
)

type BondType string

var (
	CorporateBond BondType = "Corporate"
	MunicipalBond BondType = "Municipal"
)

type Bond struct {
	Type              BondType
	Source            string
	CUSIP             string
	Ticker            string
	Desc              string
	FaceValue         float64
	Coupon            float64
	Frequency         int
	QuoteDate         time.Time
	CallDate          time.Time
	MaturityDate      time.Time
	CallPrice         float64
	Price             float64
	PeriodsToCall     int
	PeriodsToMaturity int
	YieldToCall       float64
	YieldToMaturity   float64
	YieldToWorst      float64
}

// NewCorporateBond returns a bond with the standard $1000 face and
// semiannual coupon conventions for US corporates.
func NewCorporateBond(source string, quoteDate time.Time) *Bond {
	return &Bond{
		Type:      CorporateBond,
		FaceValue: 1000.0,
		Frequency: 2,
		Source:    source,
		QuoteDate: quoteDate,
	}
}

var (
	ErrNilBond             = fmt.Errorf("bond is nil")
	ErrDataUnavailable     = fmt.Errorf("data unavailable")
	ErrUnsupportedBond     = fmt.Errorf("unsupported bond")
	ErrInvalidCUSIP        = fmt.Errorf("invalid cusip")
	ErrInvalidDesc         = fmt.Errorf("invalid description")
	ErrInvalidCoupon       = fmt.Errorf("invalid coupon")
	ErrInvalidFrequency    = fmt.Errorf("invalid coupon frequency")
	ErrInvalidFaceValue    = fmt.Errorf("invalid face value")
	ErrInvalidQuoteDate    = fmt.Errorf("invalid quote date")
	ErrInvalidMaturityDate = fmt.Errorf("invalid maturity date")
	ErrInvalidCallDate     = fmt.Errorf("invalid call date")
	ErrInvalidPrice        = fmt.Errorf("invalid price")
	ErrInvalidCallPrice    = fmt.Errorf("invalid call price")
	ErrMaturityBeforeQuote = fmt.Errorf("maturity date is before quote date")
	ErrYieldOutOfRange     = fmt.Errorf("solved yield pinned at bracket endpoint")
)

// HorizonYears splits the span from the quote date to a horizon date into
// whole years plus remaining days.
func HorizonYears(quoteDate, horizon time.Time) (int, int, error) {
	if horizon.Before(quoteDate) {
		return 0, 0, ErrMaturityBeforeQuote
	}

	years := horizon.Year() - quoteDate.Year()

	end := time.Date(
		horizon.Year(),
		horizon.Month(),
		horizon.Day(),
		0,
		0,
		0,
		0,
		horizon.Location(),
	)

	start := time.Date(
		horizon.Year(),
		quoteDate.Month(),
		quoteDate.Day(),
		0,
		0,
		0,
		0,
		horizon.Location(),
	)

	if start.After(end) {
		years--
		start = start.AddDate(-1, 0, 0)
	}

	days := int(end.Sub(start).Hours() / 24)

	return years, days, nil
}

// CouponPeriods returns the whole number of coupon periods between the
// quote date and a horizon date at the given payment frequency. Partial
// periods round up so the final coupon is always counted.
//
// TODO account for 30/360 vs Actual/Actual day counts when deriving the
// partial-period fraction.
func CouponPeriods(quoteDate, horizon time.Time, frequency int) (int, error) {
	years, days, err := HorizonYears(quoteDate, horizon)
	if err != nil {
		return 0, err
	}

	periods := years*frequency + int(math.Ceil(float64(days)/365.0*float64(frequency)))

	return periods, nil
}

// yieldPinned reports whether a solved yield sits at a bisection bracket
// endpoint, which means the quoted price was outside the feasible range.
func yieldPinned(yieldPercent float64) bool {
	const tol = 1e-9
	return yieldPercent <= tol || yieldPercent >= 100-tol
}

// CompleteBond validates the quoted fields and fills in the derived ones:
// coupon periods to each horizon, yield to maturity, yield to call for
// callable bonds, and yield to worst.
func CompleteBond(b *Bond) error {
	if b == nil {
		return ErrNilBond
	}

	if b.QuoteDate.IsZero() {
		return ErrInvalidQuoteDate
	}

	if b.MaturityDate.IsZero() {
		return ErrInvalidMaturityDate
	}

	if b.MaturityDate.Before(b.QuoteDate) {
		return ErrMaturityBeforeQuote
	}

	if b.Coupon < 0 {
		return ErrInvalidCoupon
	}

	if b.Frequency <= 0 {
		return ErrInvalidFrequency
	}

	if b.FaceValue <= 0 {
		return ErrInvalidFaceValue
	}

	if b.Price <= 0 {
		return ErrInvalidPrice
	}

	periods, err := CouponPeriods(b.QuoteDate, b.MaturityDate, b.Frequency)
	if err != nil {
		return err
	}
	if periods <= 0 {
		return ErrInvalidMaturityDate
	}

	b.PeriodsToMaturity = periods

	b.YieldToMaturity = SolveYield(CashFlowSpec{
		FaceValue:        b.FaceValue,
		CouponRate:       b.Coupon,
		PaymentsPerYear:  b.Frequency,
		PeriodsToHorizon: float64(b.PeriodsToMaturity),
		RedemptionValue:  b.FaceValue,
		ObservedPrice:    b.Price,
	})

	if yieldPinned(b.YieldToMaturity) {
		return ErrYieldOutOfRange
	}

	if b.CallDate.IsZero() {
		// not callable
		b.YieldToWorst = b.YieldToMaturity
		return nil
	}

	if b.CallDate.Before(b.QuoteDate) || b.CallDate.After(b.MaturityDate) {
		return ErrInvalidCallDate
	}

	if b.CallPrice <= 0 {
		return ErrInvalidCallPrice
	}

	periods, err = CouponPeriods(b.QuoteDate, b.CallDate, b.Frequency)
	if err != nil {
		return err
	}
	if periods <= 0 {
		return ErrInvalidCallDate
	}

	b.PeriodsToCall = periods

	b.YieldToCall = SolveYield(CashFlowSpec{
		FaceValue:        b.FaceValue,
		CouponRate:       b.Coupon,
		PaymentsPerYear:  b.Frequency,
		PeriodsToHorizon: float64(b.PeriodsToCall),
		RedemptionValue:  b.CallPrice,
		ObservedPrice:    b.Price,
	})

	if yieldPinned(b.YieldToCall) {
		return ErrYieldOutOfRange
	}

	b.YieldToWorst = YieldToWorst(b.YieldToCall, b.YieldToMaturity)

	return nil
}
