package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hydronet/catalog"
)

func newCatalogCommand(in *Input) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the catalog in use as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := in.loadCatalog()
			if err != nil {
				return err
			}

			return catalog.Encode(cmd.OutOrStdout(), cat)
		},
	}
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
