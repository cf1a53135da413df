package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	product := &productFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full evaluation pipeline and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEvaluator(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer e.Close()

			report, err := e.RunFullPipeline(cmd.Context(), product.product())
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), flags.output, report)
		},
	}
	product.bind(cmd)

	return cmd
}

func newDemoCmd(flags *rootFlags) *cobra.Command {
	product := &productFlags{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build a report from registry simulation only, without calling any model",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEvaluator(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer e.Close()

			report, err := e.RunDemoPipeline(cmd.Context(), product.product())
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), flags.output, report)
		},
	}
	product.bind(cmd)

	return cmd
}
