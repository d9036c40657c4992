package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nordtext/scandibench/internal/config"
	"github.com/nordtext/scandibench/internal/leaderboard"
)

type cliState struct {
	configPath string
	cfg        *config.Config
}

var (
	osExit                 = os.Exit
	stderrWriter io.Writer = os.Stderr
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderrWriter, err)
		osExit(1)
	}
}

func newRootCmd() *cobra.Command {
	st := &cliState{configPath: config.DefaultPath}

	root := &cobra.Command{
		Use:           "scandibench",
		Short:         "Benchmark language models on Scandinavian NLP tasks",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", st.configPath, "path to config file")

	root.AddCommand(newBenchmarkCmd(st))
	root.AddCommand(newListCmd(st))
	root.AddCommand(newLeaderboardCmd(st))
	root.AddCommand(newDatasetsCmd())
	root.AddCommand(newServeCmd(st))

	return root
}

// loadConfig resolves the effective config. A missing file at the default
// path falls back to built-in defaults plus environment variables; an
// explicitly given path must exist.
func (st *cliState) loadConfig() error {
	if st.cfg != nil {
		return nil
	}
	if st.configPath == config.DefaultPath {
		if _, err := os.Stat(st.configPath); os.IsNotExist(err) {
			st.cfg = config.Default()
			return nil
		}
	}
	cfg, err := config.Load(st.configPath)
	if err != nil {
		return err
	}
	st.cfg = cfg
	return nil
}

func openStore(cfg *config.Config) (*leaderboard.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("leaderboard: missing config")
	}

	storageType := strings.ToLower(strings.TrimSpace(cfg.Storage.Type))
	if storageType == "" {
		storageType = "sqlite"
	}

	switch storageType {
	case "sqlite":
		path := strings.TrimSpace(cfg.Storage.Path)
		if path == "" {
			path = "data/scandibench.db"
		}
		return leaderboard.NewStore(path)
	case "memory":
		return leaderboard.NewStore(":memory:")
	default:
		return nil, fmt.Errorf("leaderboard: unsupported storage type %q", storageType)
	}
}
