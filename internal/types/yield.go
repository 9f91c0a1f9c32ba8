package types

import "math"

// CashFlowSpec describes the remaining cash flows of a level-coupon bond up
// to a valuation horizon, which is either the next call date or maturity.
type CashFlowSpec struct {
	// FaceValue is the par amount of the bond.
	FaceValue float64
	// CouponRate is the annual coupon as a percentage of face value.
	CouponRate float64
	// PaymentsPerYear is the coupon frequency (2 for semiannual).
	PaymentsPerYear int
	// PeriodsToHorizon is the whole number of coupon periods remaining
	// until the horizon, equal to years * PaymentsPerYear.
	PeriodsToHorizon float64
	// RedemptionValue is the amount repaid at the horizon: the call price
	// for a call horizon, the face value for maturity.
	RedemptionValue float64
	// ObservedPrice is the quoted market price the solver matches.
	ObservedPrice float64
}

// PresentValue discounts the spec's cash flows at the given annualized
// nominal rate (0.06 for 6%) and returns the theoretical price.
//
// The result is strictly decreasing in annualRate for any valid spec, which
// is what SolveYield relies on. No input checking is done; a rate at or
// below -PaymentsPerYear produces NaN/Inf.
func PresentValue(annualRate float64, spec CashFlowSpec) float64 {
	y := annualRate / float64(spec.PaymentsPerYear)
	coupon := spec.CouponRate / 100 / float64(spec.PaymentsPerYear) * spec.FaceValue

	n := int(spec.PeriodsToHorizon)

	price := 0.0
	for t := 1; t <= n; t++ {
		price += coupon / math.Pow(1+y, float64(t))
	}

	return price + spec.RedemptionValue/math.Pow(1+y, float64(n))
}

const (
	yieldBracketLow  = 0.0
	yieldBracketHigh = 1.0
	yieldIterations  = 100
)

// SolveYield finds the annualized rate at which the present value of the
// spec's cash flows equals ObservedPrice, returned as a percentage.
//
// Bisection over [0%, 100%] with a fixed iteration count; the bracket
// width after 100 halvings is far below float64 resolution, so the result
// is exact to machine precision for any feasible price.
//
// The bracket is not validated. A price above PresentValue(0, spec) or
// below PresentValue(1, spec) converges silently to the nearest endpoint;
// use CompleteBond to surface that as ErrYieldOutOfRange.
func SolveYield(spec CashFlowSpec) float64 {
	return solveYield(spec, yieldIterations)
}

func solveYield(spec CashFlowSpec, iterations int) float64 {
	low := yieldBracketLow
	high := yieldBracketHigh
	mid := (low + high) / 2

	for i := 0; i < iterations; i++ {
		mid = (low + high) / 2

		// PV is strictly decreasing in rate: a PV above the observed
		// price means the true yield is above mid.
		if PresentValue(mid, spec) > spec.ObservedPrice {
			low = mid
		} else {
			high = mid
		}
	}

	return mid * 100
}

// YieldToCall solves the annualized yield (%) to the call horizon.
//
//	faceValue:       par amount of the bond
//	couponRate:      annual coupon (%)
//	paymentsPerYear: coupon frequency
//	yearsToCall:     years until the call date
//	callPrice:       redemption amount at the call date
//	price:           quoted market price
func YieldToCall(faceValue, couponRate float64, paymentsPerYear int, yearsToCall, callPrice, price float64) float64 {
	return SolveYield(CashFlowSpec{
		FaceValue:        faceValue,
		CouponRate:       couponRate,
		PaymentsPerYear:  paymentsPerYear,
		PeriodsToHorizon: yearsToCall * float64(paymentsPerYear),
		RedemptionValue:  callPrice,
		ObservedPrice:    price,
	})
}

// YieldToMaturity solves the annualized yield (%) to maturity, where the
// redemption amount is the face value.
func YieldToMaturity(faceValue, couponRate float64, paymentsPerYear int, yearsToMaturity, price float64) float64 {
	return SolveYield(CashFlowSpec{
		FaceValue:        faceValue,
		CouponRate:       couponRate,
		PaymentsPerYear:  paymentsPerYear,
		PeriodsToHorizon: yearsToMaturity * float64(paymentsPerYear),
		RedemptionValue:  faceValue,
		ObservedPrice:    price,
	})
}

// YieldToWorst is the lower of the yield to call and yield to maturity,
// the most conservative return estimate for a callable bond.
func YieldToWorst(ytc, ytm float64) float64 {
	return math.Min(ytc, ytm)
}
