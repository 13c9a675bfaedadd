package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dtneves/ICCS-2021/internal/dataset"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets [name]",
	Short: "List the supported datasets or profile one of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, name := range dataset.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}
		return profile(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}

func profile(cmd *cobra.Command, name string) error {
	meta, err := dataset.Lookup(name)
	if err != nil {
		return err
	}
	data, err := dataset.Load(viper.GetString("data-dir"), meta)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tCOUNT\tDISTINCT\tMIN\tMAX\tMEAN\tMEDIAN\tSTDEV\tSKEW\tKURTOSIS")
	for _, p := range dataset.Profile(data, meta) {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			p.Column, p.Count, p.Distinct, p.Min, p.Max, p.Mean, p.Median, p.StDev, p.Skewness, p.Kurtosis)
	}
	return tw.Flush()
}
