package types

import (
	"math"
	"testing"
)

func semiAnnualSpec(couponRate, years, price float64) CashFlowSpec {
	return CashFlowSpec{
		FaceValue:        1000,
		CouponRate:       couponRate,
		PaymentsPerYear:  2,
		PeriodsToHorizon: years * 2,
		RedemptionValue:  1000,
		ObservedPrice:    price,
	}
}

func TestPresentValueDecreasingInRate(t *testing.T) {
	t.Parallel()

	specs := []CashFlowSpec{
		semiAnnualSpec(6.0, 10, 0),
		semiAnnualSpec(0.0, 5, 0),
		{FaceValue: 100, CouponRate: 3.5, PaymentsPerYear: 1, PeriodsToHorizon: 7, RedemptionValue: 100},
		{FaceValue: 1000, CouponRate: 8.0, PaymentsPerYear: 4, PeriodsToHorizon: 12, RedemptionValue: 1050},
	}

	rates := []float64{0.0, 0.01, 0.03, 0.06, 0.10, 0.25, 0.50, 0.99}

	for _, spec := range specs {
		prev := math.Inf(1)
		for _, r := range rates {
			pv := PresentValue(r, spec)
			if pv >= prev {
				t.Fatalf("PV not strictly decreasing: PV(%v)=%v >= previous %v", r, pv, prev)
			}
			prev = pv
		}
	}
}

func TestPresentValueParBond(t *testing.T) {
	t.Parallel()

	// discounting at the coupon rate prices the bond at par
	for _, coupon := range []float64{2.0, 5.0, 6.0, 9.75} {
		spec := semiAnnualSpec(coupon, 10, 0)
		pv := PresentValue(coupon/100, spec)
		if math.Abs(pv-1000) > 1e-9 {
			t.Fatalf("par bond at coupon %v%%: PV=%v want 1000", coupon, pv)
		}
	}
}

func TestSolveYieldRoundTrip(t *testing.T) {
	t.Parallel()

	specs := []CashFlowSpec{
		semiAnnualSpec(6.0, 10, 0),
		semiAnnualSpec(2.5, 3, 0),
		{FaceValue: 100, CouponRate: 4.0, PaymentsPerYear: 1, PeriodsToHorizon: 15, RedemptionValue: 100},
		{FaceValue: 1000, CouponRate: 7.0, PaymentsPerYear: 2, PeriodsToHorizon: 4, RedemptionValue: 1050},
		{FaceValue: 5000, CouponRate: 0.0, PaymentsPerYear: 2, PeriodsToHorizon: 10, RedemptionValue: 5000},
	}

	rates := []float64{0.0025, 0.01, 0.04, 0.065, 0.12, 0.30, 0.80}

	for _, spec := range specs {
		for _, r := range rates {
			spec.ObservedPrice = PresentValue(r, spec)
			got := SolveYield(spec)
			want := r * 100
			if math.Abs(got-want) > 1e-6 {
				t.Fatalf("round trip at rate %v: got %.10f want %.10f", r, got, want)
			}
		}
	}
}

func TestSolveYieldParCondition(t *testing.T) {
	t.Parallel()

	// a bond priced at par yields its coupon rate, regardless of horizon
	for _, years := range []float64{1, 2, 5, 10, 30} {
		got := SolveYield(semiAnnualSpec(5.0, years, 1000))
		if math.Abs(got-5.0) > 1e-6 {
			t.Fatalf("par bond %vy: got %.10f want 5.0", years, got)
		}
	}
}

func TestYieldToMaturityWorkedExample(t *testing.T) {
	t.Parallel()

	// 1000 face, 6% semiannual, 10 years, priced at par
	got := YieldToMaturity(1000, 6.0, 2, 10, 1000)
	if math.Abs(got-6.0) > 0.01 {
		t.Fatalf("got %.6f want 6.00 +/- 0.01", got)
	}
}

func TestSolveYieldPremiumDiscount(t *testing.T) {
	t.Parallel()

	par := YieldToMaturity(1000, 6.0, 2, 10, 1000)

	premium := YieldToMaturity(1000, 6.0, 2, 10, 1100)
	if premium >= par {
		t.Fatalf("premium price must lower yield: %.6f >= %.6f", premium, par)
	}

	discount := YieldToMaturity(1000, 6.0, 2, 10, 900)
	if discount <= par {
		t.Fatalf("discount price must raise yield: %.6f <= %.6f", discount, par)
	}

	// strictly decreasing across a price ladder
	prev := math.Inf(1)
	for _, price := range []float64{800, 900, 1000, 1100, 1200} {
		y := YieldToMaturity(1000, 6.0, 2, 10, price)
		if y >= prev {
			t.Fatalf("yield not strictly decreasing in price: %.6f >= %.6f at price %v", y, prev, price)
		}
		prev = y
	}
}

func TestYieldToWorstSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		price       float64
		callPrice   float64
		worstIsCall bool
	}{
		// a premium is absorbed faster over the short call horizon
		{name: "premium bond", price: 1100, callPrice: 1050, worstIsCall: true},
		// a discount accretes faster to the call, so maturity is worse
		{name: "discount bond", price: 900, callPrice: 1000, worstIsCall: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ytc := YieldToCall(1000, 8.0, 2, 2, tc.callPrice, tc.price)
			ytm := YieldToMaturity(1000, 8.0, 2, 10, tc.price)
			ytw := YieldToWorst(ytc, ytm)

			if ytw != math.Min(ytc, ytm) {
				t.Fatalf("YTW=%.6f want min(%.6f, %.6f)", ytw, ytc, ytm)
			}

			if tc.worstIsCall && ytc >= ytm {
				t.Fatalf("expected YTC < YTM, got %.6f >= %.6f", ytc, ytm)
			}
			if !tc.worstIsCall && ytm >= ytc {
				t.Fatalf("expected YTM < YTC, got %.6f >= %.6f", ytm, ytc)
			}
		})
	}
}

func TestSolveYieldConvergenceBound(t *testing.T) {
	t.Parallel()

	// 100 halvings already exhaust float64 resolution; doubling the
	// iteration count must not move the result
	spec := semiAnnualSpec(6.0, 10, 0)
	spec.ObservedPrice = PresentValue(0.0712, spec)

	got100 := solveYield(spec, yieldIterations)
	got200 := solveYield(spec, 200)

	if math.Abs(got100-got200) > 1e-12 {
		t.Fatalf("iteration count changed the result: %.15f vs %.15f", got100, got200)
	}
}

func TestSolveYieldInfeasiblePricePins(t *testing.T) {
	t.Parallel()

	// price above PV(0): no non-negative rate can match, pins at 0%
	spec := semiAnnualSpec(6.0, 10, 10_000)
	if got := SolveYield(spec); got > 1e-9 {
		t.Fatalf("overpriced bond should pin at 0%%, got %.12f", got)
	}

	// price below PV(1): no rate under 100% can match, pins at 100%
	spec = semiAnnualSpec(6.0, 10, 0.01)
	if got := SolveYield(spec); got < 100-1e-9 {
		t.Fatalf("underpriced bond should pin at 100%%, got %.12f", got)
	}
}
