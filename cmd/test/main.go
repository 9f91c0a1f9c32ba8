package main

import (
	"benritz/bondyield/internal/types"
	"fmt"
)

func main() {
	var ytc, ytm float64

	// 6% semiannual, 10y, priced at par
	fmt.Println("6% 10y at par")
	ytm = types.YieldToMaturity(1000, 6.0, 2, 10, 1000)
	fmt.Printf("YTM: %.8f\n", ytm)
	fmt.Println()

	// same bond at a premium and a discount
	fmt.Println("6% 10y at 1100 / 900")
	ytm = types.YieldToMaturity(1000, 6.0, 2, 10, 1100)
	fmt.Printf("Premium YTM: %.8f\n", ytm)
	ytm = types.YieldToMaturity(1000, 6.0, 2, 10, 900)
	fmt.Printf("Discount YTM: %.8f\n", ytm)
	fmt.Println()

	// 8% callable in 2y at 1050, matures in 10y, priced at 1100:
	// the short call horizon absorbs the premium, so YTW is the call yield
	fmt.Println("8% 10y at 1100, callable 2y at 1050")
	ytc = types.YieldToCall(1000, 8.0, 2, 2, 1050, 1100)
	ytm = types.YieldToMaturity(1000, 8.0, 2, 10, 1100)
	fmt.Printf("YTC: %.8f\n", ytc)
	fmt.Printf("YTM: %.8f\n", ytm)
	fmt.Printf("YTW: %.8f\n", types.YieldToWorst(ytc, ytm))
	fmt.Println()

	// price round trip through the present value function
	fmt.Println("PV round trip at 7%")
	spec := types.CashFlowSpec{
		FaceValue:        1000,
		CouponRate:       6.0,
		PaymentsPerYear:  2,
		PeriodsToHorizon: 20,
		RedemptionValue:  1000,
	}
	spec.ObservedPrice = types.PresentValue(0.07, spec)
	fmt.Printf("Price: %.8f\n", spec.ObservedPrice)
	fmt.Printf("Solved: %.8f\n", types.SolveYield(spec))
}
