package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	espgo "github.com/ivangzz/espgo"
)

var dumpRecurrent bool

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "dump prints a persisted network's header and weight vectors",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpRecurrent, "recurrent", false, "the dump is a recurrent-variant network")
}

func runDump(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("dump: open %s: %w", args[0], err)
	}
	defer file.Close()

	var variant espgo.Variant = espgo.FeedForwardVariant{}
	if dumpRecurrent {
		variant = espgo.RecurrentVariant{}
	}

	net, err := espgo.LoadNetwork(file, variant)
	if err != nil {
		return err
	}

	fmt.Printf("variant:    %s\n", net.Variant.Kind())
	fmt.Printf("numInputs:  %d\n", net.NumInputs)
	fmt.Printf("numHidden:  %d\n", len(net.HiddenUnits))
	fmt.Printf("numOutputs: %d\n", net.NumOutputs)
	for k, n := range net.HiddenUnits {
		fmt.Printf("  slot %d: %v\n", k, n.Weight)
	}
	return nil
}
