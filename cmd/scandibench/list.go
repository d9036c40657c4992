package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nordtext/scandibench/internal/hub"
	"github.com/nordtext/scandibench/internal/language"
)

func newListCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available models or datasets",
	}
	cmd.AddCommand(newListModelsCmd(st))
	cmd.AddCommand(newListDatasetsCmd())
	return cmd
}

func newListModelsCmd(st *cliState) *cobra.Command {
	var langCodes []string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List hub models tagged with the benchmark languages",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return st.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := langCodes
			if len(codes) == 0 {
				codes = st.cfg.Benchmark.Languages
			}
			if len(codes) == 0 {
				codes = []string{"da", "sv", "no"}
			}
			langs, err := language.Parse(codes)
			if err != nil {
				return err
			}

			var opts []hub.Option
			if st.cfg.Hub.Endpoint != "" {
				opts = append(opts, hub.WithEndpoint(st.cfg.Hub.Endpoint))
			}
			if st.cfg.Hub.AuthToken != "" {
				opts = append(opts, hub.WithAuthToken(st.cfg.Hub.AuthToken))
			}
			client := hub.NewClient(opts...)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			lists, err := client.ListModels(ctx, langs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			codesSorted := make([]string, 0, len(lists))
			for code := range lists {
				codesSorted = append(codesSorted, code)
			}
			sort.Strings(codesSorted)

			for _, code := range codesSorted {
				label := code
				if lang, ok := language.Get(code); ok {
					label = lang.Name
				}
				fmt.Fprintf(out, "%s (%d models):\n", label, len(lists[code]))
				for _, id := range lists[code] {
					fmt.Fprintf(out, "  %s\n", id)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&langCodes, "language", nil, "language codes to list models for (default: config languages)")
	return cmd
}

func newListDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the built-in benchmark datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTASK\tLANGUAGE")
			for _, d := range knownDatasets {
				lang, _ := language.Get(d.lang)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.name, d.task, lang.Name)
			}
			return tw.Flush()
		},
	}
}
