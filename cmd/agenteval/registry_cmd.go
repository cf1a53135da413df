package main

import (
	"fmt"

	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/stage"
	"github.com/mokiat/gog"
	"github.com/spf13/cobra"
)

func newSearchCmd(flags *rootFlags) *cobra.Command {
	product := &productFlags{}
	var explain bool
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Rank the agent registry against a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEvaluator(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer e.Close()

			if explain {
				return printOutput(cmd.OutOrStdout(), flags.output, e.Explain(cmd.Context(), product.product(), nil))
			}
			return printOutput(cmd.OutOrStdout(), flags.output, e.Search(cmd.Context(), product.product(), nil))
		},
	}
	product.bind(cmd)
	cmd.Flags().BoolVar(&explain, "explain", false, "Print every registry entry with its relevance score")

	return cmd
}

func newSimulateCmd(flags *rootFlags) *cobra.Command {
	var useCase string
	cmd := &cobra.Command{
		Use:   "simulate <framework-name>",
		Short: "Score a registry framework for a use case from its published metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.Errorf("framework-name is required")
			}

			e, err := newEvaluator(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer e.Close()

			result, err := e.SimulateByName(cmd.Context(), args[0], useCase)
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), flags.output, result)
		},
	}
	cmd.Flags().StringVar(&useCase, "use-case", "", "Use case name")

	return cmd
}

func newStagesCmd(flags *rootFlags) *cobra.Command {
	var schemas bool
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List the stages served to remote callers",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEvaluator(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer e.Close()

			all := e.Stages().Schemas()
			if schemas {
				return printOutput(cmd.OutOrStdout(), flags.output, all)
			}

			lines := gog.Map(all, func(s stage.Schema) string {
				return fmt.Sprintf("%-32s %s", s.Name, s.Description)
			})
			for _, line := range lines {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&schemas, "schemas", false, "Print input and output JSON schemas")

	return cmd
}
