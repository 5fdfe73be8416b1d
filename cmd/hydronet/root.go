package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hydronet/catalog"
	"github.com/katalvlaran/hydronet/logging"
	"github.com/katalvlaran/hydronet/network"
)

// Output formats.
const (
	outputText = "text"
	outputYAML = "yaml"
)

// Input holds the flags shared by every command.
type Input struct {
	documentPath string
	catalogPath  string
	verbose      bool
	output       string
}

func newRootCommand(in *Input, version string) *cobra.Command {
	root := &cobra.Command{
		Use:          "hydronet",
		Short:        "Size the pipes of a water and gas network",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&in.documentPath, "file", "f", "network.yaml", "network document")
	root.PersistentFlags().StringVar(&in.catalogPath, "catalog", "", "catalog file replacing the built-in one")
	root.PersistentFlags().BoolVarP(&in.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVarP(&in.output, "output", "o", outputText, "output format: text or yaml")

	root.AddCommand(
		newSolveCommand(in),
		newRingsCommand(in),
		newReturnsCommand(in),
		newCatalogCommand(in),
	)

	return root
}

// logger writes to the command's stderr, at debug level with -v.
func (in *Input) logger(cmd *cobra.Command) *logrus.Logger {
	level := logrus.WarnLevel
	if in.verbose {
		level = logrus.DebugLevel
	}

	return logging.New(cmd.ErrOrStderr(), level)
}

func (in *Input) loadCatalog() (*catalog.Catalog, error) {
	if in.catalogPath == "" {
		return catalog.Default(), nil
	}

	return catalog.LoadFile(in.catalogPath)
}

func (in *Input) loadStore() (*network.MemoryStore, error) {
	cat, err := in.loadCatalog()
	if err != nil {
		return nil, err
	}

	return network.LoadDocumentFile(in.documentPath, cat)
}

func (in *Input) checkOutput() error {
	switch in.output {
	case outputText, outputYAML:
		return nil
	}

	return errors.Errorf("unknown output format %q", in.output)
}
