package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hydronet/logging"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/returns"
)

type loopView struct {
	Plant    string                    `yaml:"plant"`
	Balanced bool                      `yaml:"balanced"`
	Calc     *network.PlantCalculation `yaml:"calculation"`
	Pipes    map[string]*float64       `yaml:"returnFlowLS"`
	Valves   map[string]*float64       `yaml:"balancingDropKPA,omitempty"`
}

func withLogger(cmd *cobra.Command, in *Input) context.Context {
	return logging.WithLogger(cmd.Context(), in.logger(cmd))
}

func newReturnsCommand(in *Input) *cobra.Command {
	return &cobra.Command{
		Use:   "returns",
		Short: "Identify and balance the hot-water return loops of a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := in.checkOutput(); err != nil {
				return err
			}
			s, err := in.loadStore()
			if err != nil {
				return err
			}
			ctx := withLogger(cmd, in)

			g := network.BuildFlowGraph(s)
			loops := returns.IdentifyReturns(ctx, s, g)
			sizer := network.NewCatalogSizer(s)
			network.DemandPass(ctx, s, g, sizer)
			sv := returns.NewSolver(s, sizer)

			views := make([]loopView, 0, len(loops))
			for _, rec := range loops {
				v := loopView{
					Plant:    rec.Plant.ID,
					Balanced: sv.Balance(ctx, rec),
					Calc:     s.PlantCalc(rec.Plant.ID),
					Pipes:    make(map[string]*float64),
					Valves:   make(map[string]*float64),
				}
				for _, e := range rec.Graph.Edges() {
					if e.Value.Type == network.EdgePipe {
						v.Pipes[e.Value.UID] = s.PipeCalc(e.Value.UID).ReturnFlowRateLS
					}
				}
				// Valves are collapsed into loop nodes.
				for _, e := range s.Entities() {
					bv, ok := e.(*network.DirectedValve)
					if !ok || bv.Valve != network.BalancingValve || !rec.Graph.HasNode(bv.ID) {
						continue
					}
					if d := s.ValveCalc(bv.ID).PressureDropKPA; d != nil {
						v.Valves[bv.ID] = d
					}
				}
				views = append(views, v)
			}

			w := cmd.OutOrStdout()
			if in.output == outputYAML {
				enc := yaml.NewEncoder(w)
				defer enc.Close()

				return enc.Encode(views)
			}
			fmt.Fprintf(w, "%d return loop(s)\n", len(views))
			for _, v := range views {
				if !v.Balanced {
					fmt.Fprintf(w, "plant %s: not balanced\n", v.Plant)
					continue
				}
				fmt.Fprintf(w, "plant %s: circulation %s, heat loss %s, loop drop %s\n", v.Plant,
					num("%.3f L/s", v.Calc.CirculationFlowRateLS),
					num("%.2f kW", v.Calc.HeatLossKW),
					num("%.1f kPa", v.Calc.CirculationPressureLossKPA))
				for _, uid := range sortedKeys(v.Valves) {
					fmt.Fprintf(w, "  valve %s set to %.1f kPa\n", uid, *v.Valves[uid])
				}
			}

			return nil
		},
	}
}
