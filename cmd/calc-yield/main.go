package main

import (
	"benritz/bondyield/internal/types"
	"flag"
	"fmt"
)

func pinnedWarning(name string, yield float64) {
	const tol = 1e-6
	if yield <= tol || yield >= 100-tol {
		fmt.Printf("Warning: %s pinned at %.0f%%, price is outside the feasible range\n", name, yield)
	}
}

func main() {
	coupon := flag.Float64("coupon", 0.0, "Coupon rate (%) of the bond")
	faceValue := flag.Float64("facevalue", 1000, "Face value of the bond")
	price := flag.Float64("price", 0.0, "Market price of the bond")
	frequency := flag.Int("frequency", 2, "Coupon payments per year")
	yearsToMaturity := flag.Float64("yearstomaturity", 0.0, "Years until maturity")
	yearsToCall := flag.Float64("yearstocall", 0.0, "Years until the call date")
	callPrice := flag.Float64("callprice", 0.0, "Redemption price at the call date")

	flag.Parse()

	flagsSet := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		flagsSet[f.Name] = true
	})

	if !flagsSet["coupon"] {
		fmt.Println("Error: -coupon flag is required")
		return
	}

	if !flagsSet["price"] {
		fmt.Println("Error: -price flag is required")
		return
	}

	if !flagsSet["yearstomaturity"] {
		fmt.Println("Error: -yearstomaturity flag is required")
		return
	}

	if flagsSet["yearstocall"] != flagsSet["callprice"] {
		fmt.Println("Error: -yearstocall and -callprice must be set together")
		return
	}

	if *coupon < 0.0 || *coupon > 100.0 {
		fmt.Println("Error: coupon rate must be between 0.0 and 100.0")
		return
	}

	if *faceValue <= 0.0 {
		fmt.Println("Error: face value must be greater than 0.0")
		return
	}

	if *price <= 0.0 {
		fmt.Println("Error: price must be greater than 0.0")
		return
	}

	if *frequency <= 0 {
		fmt.Println("Error: frequency must be greater than 0")
		return
	}

	if *yearsToMaturity <= 0.0 {
		fmt.Println("Error: years to maturity must be greater than 0.0")
		return
	}

	callable := flagsSet["yearstocall"]

	if callable {
		if *yearsToCall <= 0.0 || *yearsToCall > *yearsToMaturity {
			fmt.Println("Error: years to call must be between 0.0 and years to maturity")
			return
		}

		if *callPrice <= 0.0 {
			fmt.Println("Error: call price must be greater than 0.0")
			return
		}
	}

	ytm := types.YieldToMaturity(*faceValue, *coupon, *frequency, *yearsToMaturity, *price)

	fmt.Printf("Bond Details:\n")
	fmt.Printf("\tFace Value: %.2f\n", *faceValue)
	fmt.Printf("\tCoupon Rate: %.3f%%\n", *coupon)
	fmt.Printf("\tPayments Per Year: %d\n", *frequency)
	fmt.Printf("\tMarket Price: %.2f\n", *price)
	fmt.Printf("\tYears to Maturity: %.2f\n", *yearsToMaturity)

	if !callable {
		fmt.Printf("\tYield to Maturity: %.4f%%\n", ytm)
		fmt.Printf("\tYield to Worst: %.4f%%\n", ytm)
		pinnedWarning("yield to maturity", ytm)
		return
	}

	ytc := types.YieldToCall(*faceValue, *coupon, *frequency, *yearsToCall, *callPrice, *price)

	fmt.Printf("\tYears to Call: %.2f\n", *yearsToCall)
	fmt.Printf("\tCall Price: %.2f\n", *callPrice)
	fmt.Printf("\tYield to Call: %.4f%%\n", ytc)
	fmt.Printf("\tYield to Maturity: %.4f%%\n", ytm)
	fmt.Printf("\tYield to Worst: %.4f%%\n", types.YieldToWorst(ytc, ytm))

	pinnedWarning("yield to call", ytc)
	pinnedWarning("yield to maturity", ytm)
}
