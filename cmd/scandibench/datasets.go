package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nordtext/scandibench/internal/dataset"
)

func newDatasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Manage benchmark datasets",
	}
	cmd.AddCommand(newDatasetsBuildCmd())
	return cmd
}

func newDatasetsBuildCmd() *cobra.Command {
	var opts dataset.BuildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build train/val/test splits from raw multiple-choice rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			res, err := dataset.Build(ctx, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Built %s: %d rows -> train=%d val=%d test=%d\n",
				opts.Name, res.Total, res.Train, res.Val, res.Test)
			for _, f := range res.Files {
				fmt.Fprintf(out, "  %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "dataset name (used in output file names)")
	cmd.Flags().StringVar(&opts.LangCode, "language", "da", "language of the choices header")
	cmd.Flags().StringVar(&opts.InPath, "in", "", "input jsonl file or directory")
	cmd.Flags().StringVar(&opts.OutDir, "out", defaultDataDir, "output directory")

	return cmd
}
