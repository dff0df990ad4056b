package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Optimizer/internal/config"
	"github.com/MikeSquared-Agency/Optimizer/internal/decision"
	"github.com/MikeSquared-Agency/Optimizer/internal/table"
)

type solveOptions struct {
	idColumn string
	inverted []string
}

func newSolveCmd() *cobra.Command {
	var opts solveOptions
	cmd := &cobra.Command{
		Use:   "solve [file|-]",
		Short: "Solve a CSV problem and print the decision as JSON",
		Long: `Reads a CSV table whose header names an identifier column and one numeric
column per criterion. Criteria are minimised unless listed in --inverted.
With no file, or "-", the table is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("id-column") {
				cfg.Solver.IDColumn = opts.idColumn
			}
			if cmd.Flags().Changed("inverted") {
				cfg.Solver.Inverted = opts.inverted
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open problem: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runSolve(in, cmd.OutOrStdout(), cfg.Solver)
		},
	}
	cmd.Flags().StringVar(&opts.idColumn, "id-column", table.DefaultIDColumn, "name of the identifier column")
	cmd.Flags().StringSliceVar(&opts.inverted, "inverted", nil, "criteria to maximise instead of minimise")
	return cmd
}

func runSolve(in io.Reader, out io.Writer, sc config.SolverConfig) error {
	t, err := table.ReadCSV(in, sc.IDColumn)
	if err != nil {
		return err
	}
	def, err := decision.NewDefinition(t, sc.Inverted)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(def.Solve())
}
