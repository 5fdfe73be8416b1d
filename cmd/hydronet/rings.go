package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/returns"
	"github.com/katalvlaran/hydronet/ringmain"
)

// ringView is one sized ring for YAML output.
type ringView struct {
	Pipes []ringPipe `yaml:"pipes"`
}

type ringPipe struct {
	UID       string               `yaml:"uid"`
	FlowLS    *float64             `yaml:"flowLS,omitempty"`
	FlowFrom  *string              `yaml:"flowFrom,omitempty"`
	NominalMM *float64             `yaml:"nominalMM,omitempty"`
	Reason    network.NoFlowReason `yaml:"reason,omitempty"`
	Warnings  network.Warnings     `yaml:"warnings,omitempty"`
}

func newRingsCommand(in *Input) *cobra.Command {
	return &cobra.Command{
		Use:   "rings",
		Short: "Find and size the ring mains of a document",
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
			// Return loops are not ring mains; tag them first.
			returns.IdentifyReturns(ctx, s, g)
			sizer := network.NewCatalogSizer(s)
			network.DemandPass(ctx, s, g, sizer)
			rings := ringmain.FindRingMains(s, g)
			ringmain.NewSolver(s, sizer).CalculateAllRings(ctx, g)

			views := make([]ringView, 0, len(rings))
			for _, r := range rings {
				var v ringView
				for _, uid := range r.Pipes() {
					c := s.PipeCalc(uid)
					v.Pipes = append(v.Pipes, ringPipe{
						UID: uid, FlowLS: c.PeakFlowRateLS, FlowFrom: c.FlowFrom,
						NominalMM: c.RealNominalDiameterMM, Reason: c.NoFlowAvailableReason, Warnings: c.Warnings,
					})
				}
				views = append(views, v)
			}

			w := cmd.OutOrStdout()
			if in.output == outputYAML {
				enc := yaml.NewEncoder(w)
				defer enc.Close()

				return enc.Encode(views)
			}
			fmt.Fprintf(w, "%d ring main(s)\n", len(views))
			for i, v := range views {
				fmt.Fprintf(w, "ring %d:\n", i+1)
				for _, p := range v.Pipes {
					line := fmt.Sprintf("  %s %s DN%s", p.UID, num("%.2f L/s", p.FlowLS), num("%.0f", p.NominalMM))
					if p.FlowFrom != nil {
						line += " from " + *p.FlowFrom
					}
					if p.Reason != "" {
						line += " " + string(p.Reason)
					}
					for _, wn := range p.Warnings {
						line += " " + string(wn)
					}
					fmt.Fprintln(w, strings.TrimRight(line, " "))
				}
			}

			return nil
		},
	}
}
