package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nordtext/scandibench/internal/config"
	"github.com/nordtext/scandibench/internal/dataset"
	"github.com/nordtext/scandibench/internal/hub"
	"github.com/nordtext/scandibench/internal/llm"
	"github.com/nordtext/scandibench/internal/models"
	"github.com/nordtext/scandibench/internal/qa"
	"github.com/nordtext/scandibench/internal/runner"
	"github.com/nordtext/scandibench/internal/tokenizer"
)

type benchmarkOptions struct {
	model       string
	modelType   string
	dataset     string
	dataPath    string
	maxExamples int
	raiseErrors bool
}

func newBenchmarkCmd(st *cliState) *cobra.Command {
	var opts benchmarkOptions

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Benchmark a model on a dataset and save the results",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return st.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmarkCmd(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.model, "model", "", "model ID (hub ID, local dir, fresh-<name> or provider/model)")
	cmd.Flags().StringVar(&opts.modelType, "model-type", "", "force model type: fresh|hub|local|remote")
	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "dataset: "+datasetNames())
	cmd.Flags().StringVar(&opts.dataPath, "data", "", "dataset jsonl file or directory (overrides the default location)")
	cmd.Flags().IntVar(&opts.maxExamples, "max-examples", 0, "cap on evaluated examples (0 = all)")
	cmd.Flags().BoolVar(&opts.raiseErrors, "raise-errors", false, "fail the run on the first provider error")

	return cmd
}

func runBenchmarkCmd(cmd *cobra.Command, st *cliState, opts *benchmarkOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("benchmark: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("benchmark: nil options")
	}
	if strings.TrimSpace(opts.model) == "" {
		return fmt.Errorf("benchmark: missing --model")
	}

	maxExamples := opts.maxExamples
	if maxExamples == 0 {
		maxExamples = st.cfg.Benchmark.MaxExamples
	}
	ds, err := resolveDataset(opts.dataset, opts.dataPath, maxExamples)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	selector, err := newSelector(st.cfg)
	if err != nil {
		return err
	}

	setup, err := resolveSetup(ctx, selector, opts.model, opts.modelType)
	if err != nil {
		return err
	}

	modelCfg, err := setup.ModelConfig(ctx, opts.model)
	if err != nil {
		return err
	}

	loaded, err := setup.Load(ctx, modelCfg, supertaskFor(ds.Task()))
	if err != nil {
		return err
	}

	if loaded.Provider != nil {
		return runRemoteBenchmark(cmd, ctx, st.cfg, ds, loaded, opts)
	}
	if ds.Task() == dataset.TaskQA && loaded.Tokenizer != nil {
		return runQAPreparation(cmd, ctx, st.cfg, ds, loaded)
	}
	return fmt.Errorf("benchmark: model type %q cannot be scored on dataset %q", modelCfg.Type, ds.Name())
}

func runRemoteBenchmark(cmd *cobra.Command, ctx context.Context, cfg *config.Config, ds dataset.Dataset, loaded *models.Loaded, opts *benchmarkOptions) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	r := &runner.Runner{
		Provider:    loaded.Provider,
		Store:       store,
		Model:       loaded.Config.ModelID,
		RaiseErrors: opts.raiseErrors || cfg.Benchmark.RaiseErrors,
	}

	res, err := r.Run(ctx, ds)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: model=%s dataset=%s task=%s language=%s\n",
		res.RunID, res.Model, res.Dataset, res.Task, res.Language)
	for _, name := range sortedMetricNames(res.Metrics) {
		fmt.Fprintf(out, "  %s: %.2f\n", name, res.Metrics[name])
	}
	fmt.Fprintf(out, "  examples=%d tokens=%d time=%s\n",
		len(res.Examples), res.TotalTokens, res.TotalTime.Round(time.Millisecond))
	return nil
}

// runQAPreparation tokenizes and labels the dataset with the model's own
// tokenizer. Encoder models stop here: window preparation is the part of the
// pipeline this harness owns.
func runQAPreparation(cmd *cobra.Command, ctx context.Context, cfg *config.Config, ds dataset.Dataset, loaded *models.Loaded) error {
	examples, err := ds.Load(ctx)
	if err != nil {
		return err
	}

	windows, err := qa.PrepareTrainingExamples(loaded.Tokenizer, dataset.RawExamples(examples), tokenizer.PairOptions{
		MaxLength: cfg.Benchmark.MaxLength,
		Stride:    cfg.Benchmark.Stride,
	})
	if err != nil {
		return err
	}

	answerable := 0
	for _, w := range windows {
		if w.Label.Answerable {
			answerable++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Prepared %s for %s: %d examples, %d windows (%d answerable)\n",
		ds.Name(), loaded.Config.ModelID, len(examples), len(windows), answerable)
	return nil
}

func newSelector(cfg *config.Config) (*models.Selector, error) {
	registry, err := llm.NewRegistryFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	var hubOpts []hub.Option
	if cfg.Hub.Endpoint != "" {
		hubOpts = append(hubOpts, hub.WithEndpoint(cfg.Hub.Endpoint))
	}
	if cfg.Hub.AuthToken != "" {
		hubOpts = append(hubOpts, hub.WithAuthToken(cfg.Hub.AuthToken))
	}

	return models.NewSelector(
		&models.RemoteSetup{Registry: registry},
		&models.FreshSetup{CacheDir: cfg.Hub.CacheDir, AuthToken: cfg.Hub.AuthToken},
		&models.LocalSetup{},
		&models.HubSetup{
			Client:    hub.NewClient(hubOpts...),
			CacheDir:  cfg.Hub.CacheDir,
			AuthToken: cfg.Hub.AuthToken,
		},
	), nil
}

func resolveSetup(ctx context.Context, selector *models.Selector, modelID, modelType string) (models.Setup, error) {
	if strings.TrimSpace(modelType) != "" {
		t, err := models.ParseType(modelType)
		if err != nil {
			return nil, err
		}
		return selector.ForType(t)
	}
	return selector.Resolve(ctx, modelID)
}

func supertaskFor(task string) string {
	if task == dataset.TaskQA {
		return models.SupertaskQuestionAnswering
	}
	return models.SupertaskSequenceClassification
}

func sortedMetricNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
