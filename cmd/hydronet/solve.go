package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hydronet/engine"
	"github.com/katalvlaran/hydronet/network"
)

func newSolveCommand(in *Input) *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Run a full solve pass and print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := in.checkOutput(); err != nil {
				return err
			}
			s, err := in.loadStore()
			if err != nil {
				return err
			}
			rep, err := engine.New(s, engine.WithLogger(in.logger(cmd))).Solve(cmd.Context())
			if err != nil {
				return err
			}

			if in.output == outputYAML {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				defer enc.Close()

				return enc.Encode(rep)
			}

			return writeReport(cmd.OutOrStdout(), rep)
		},
	}
}

func writeReport(w io.Writer, rep *engine.Report) error {
	fmt.Fprintf(w, "solve %s\n", rep.ID)
	fmt.Fprintf(w, "branches sized: %d\n", rep.BranchesSized)
	fmt.Fprintf(w, "return loops:   %d (%d balanced)\n", rep.Returns, rep.ReturnsBalanced)
	fmt.Fprintf(w, "ring mains:     %d\n", rep.Rings)
	fmt.Fprintf(w, "gas components: %d\n\n", rep.GasComponents)

	uids := make([]string, 0, len(rep.Pipes))
	for uid := range rep.Pipes {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PIPE\tROLE\tFLOW\tDN\tVELOCITY\tDROP\tNOTE")
	for _, uid := range uids {
		c := rep.Pipes[uid]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			uid, role(c), flow(c), num("%.0f", c.RealNominalDiameterMM),
			num("%.2f m/s", c.VelocityMS), num("%.2f kPa", c.PressureDropKPA), note(c))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rep.Unreached) > 0 {
		fmt.Fprintf(w, "\nunreached: %s\n", strings.Join(rep.Unreached, " "))
	}
	if len(rep.Annotations) > 0 {
		fmt.Fprintln(w)
		for _, a := range rep.Annotations {
			fmt.Fprintf(w, "%s %s: %s\n", a.Kind, a.UID, annotationText(a))
		}
	}

	return nil
}

func role(c *network.PipeCalculation) string {
	if c.Configuration == "" {
		return "-"
	}

	return string(c.Configuration)
}

func flow(c *network.PipeCalculation) string {
	switch {
	case c.GasFlowRateMJH != nil:
		return fmt.Sprintf("%.1f MJ/h", *c.GasFlowRateMJH)
	case c.ReturnFlowRateLS != nil:
		return fmt.Sprintf("%.3f L/s", *c.ReturnFlowRateLS)
	case c.PeakFlowRateLS != nil:
		return fmt.Sprintf("%.2f L/s", *c.PeakFlowRateLS)
	}

	return "-"
}

func num(format string, v *float64) string {
	if v == nil {
		return "-"
	}

	return fmt.Sprintf(format, *v)
}

func note(c *network.PipeCalculation) string {
	if c.NoFlowAvailableReason != "" {
		return string(c.NoFlowAvailableReason)
	}
	if len(c.Warnings) > 0 {
		return string(c.Warnings[0])
	}

	return ""
}

func annotationText(a engine.Annotation) string {
	parts := make([]string, 0, len(a.Warnings)+1)
	if a.Reason != "" {
		parts = append(parts, string(a.Reason))
	}
	for _, w := range a.Warnings {
		parts = append(parts, string(w))
	}

	return strings.Join(parts, ", ")
}
