package psd_test

import (
	"fmt"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/psd"
)

func ExampleLookup() {
	c := catalog.Default()
	basin := psd.Profile{Units: 3}
	shower := psd.Profile{Units: 7, ContinuousFlowLS: 0.05}

	fr, ok, err := psd.Lookup(basin.Merge(shower), c.PSD["loadingUnits"], nil)
	if err != nil || !ok {
		fmt.Println("no flow")

		return
	}
	fmt.Printf("%.2f L/s\n", fr.FlowRateLS)
	// Output: 0.43 L/s
}
