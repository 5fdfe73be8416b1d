package network_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/network"
)

// ExampleDemandPass sizes a single branch from a source to a basin.
func ExampleDemandPass() {
	doc := `
entities:
  - {type: flowSource, uid: S, system: coldWater, pressureKPA: 300}
  - {type: loadNode, uid: basin, system: coldWater, loadingUnits: 3}
  - {type: pipe, uid: p, system: coldWater, endpoints: [S, basin], lengthM: 4}
`
	s, err := network.LoadDocument(strings.NewReader(doc), catalog.Default())
	if err != nil {
		panic(err)
	}
	g := network.BuildFlowGraph(s)
	network.DemandPass(context.Background(), s, g, network.NewCatalogSizer(s))

	calc := s.PipeCalc("p")
	fmt.Printf("%.2f L/s from %s, DN%.0f\n", *calc.PeakFlowRateLS, *calc.FlowFrom, *calc.RealNominalDiameterMM)

	// Output:
	// 0.20 L/s from S, DN18
}
