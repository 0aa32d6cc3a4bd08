package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vitos/ig_account_mirror/internal/usecase"
)

// Prints the harvest sequence for a parameter set without touching any
// stored baseline. Handy for eyeballing a strategy before committing it.
func main() {
	if len(os.Args) != 5 {
		fmt.Println("usage: harvest_preview <contracts> <target_points> <band_divisor> <harvest_fraction>")
		os.Exit(1)
	}

	args := make([]float64, 4)
	for i, raw := range os.Args[1:] {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Printf("Invalid argument %q: %v\n", raw, err)
			os.Exit(1)
		}
		args[i] = v
	}

	steps := usecase.PlanHarvest(args[0], args[1], args[2], args[3])
	if len(steps) == 0 {
		fmt.Println("No sequence: degenerate parameters")
		os.Exit(1)
	}

	sum := 0.0
	for i, s := range steps {
		sum += s
		fmt.Printf("step %2d: close %.1f (cumulative %.1f)\n", i+1, s, sum)
	}
	fmt.Printf("total: %.1f contracts in %d steps\n", sum, len(steps))
}
