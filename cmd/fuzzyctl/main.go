package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/fuzzy/internal/logging"
	"github.com/cognicore/fuzzy/pkg/fuzzy"
	"github.com/cognicore/fuzzy/pkg/fuzzy/config"
	"github.com/cognicore/fuzzy/pkg/fuzzy/engine"
	"github.com/cognicore/fuzzy/pkg/fuzzy/store"
	"github.com/cognicore/fuzzy/pkg/fuzzy/store/memstore"
	"github.com/cognicore/fuzzy/pkg/fuzzy/store/sqlite"
)

// cli carries the persistent flags and the state built from them.
type cli struct {
	configPath  string
	dbPath      string
	logJSON     bool
	logLevel    string
	showMetrics bool
	workers     int

	log      *zap.Logger
	registry *prometheus.Registry
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "fuzzyctl",
		Short: "Run Mamdani fuzzy inference systems",
		Long: `fuzzyctl loads a fuzzy system definition (YAML or TOML), evaluates it
for crisp inputs or over whole input grids, and keeps a journal of runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(c.logJSON, c.logLevel)
			if err != nil {
				return err
			}
			c.log = log
			c.registry = prometheus.NewRegistry()
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.log != nil {
				_ = c.log.Sync()
			}
			if !c.showMetrics || c.registry == nil {
				return nil
			}
			return writeMetrics(cmd.ErrOrStderr(), c.registry)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "fuzzy.yaml", "System definition (.yaml, .yml or .toml)")
	pf.StringVar(&c.dbPath, "db", "", "SQLite run journal; empty keeps runs in memory")
	pf.BoolVar(&c.logJSON, "log-json", false, "Emit JSON logs")
	pf.StringVar(&c.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	pf.BoolVar(&c.showMetrics, "metrics", false, "Print engine counters to stderr on exit")
	pf.IntVar(&c.workers, "workers", 1, "Parallel workers for surface sweeps")

	root.AddCommand(
		newInferCmd(c),
		newSurfaceCmd(c),
		newRunsCmd(c),
		newValidateCmd(c),
	)
	return root
}

// buildSystem loads the definition and assembles the facade around it.
func (c *cli) buildSystem(ctx context.Context) (*fuzzy.System, *config.Definition, func(), error) {
	def, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "load config")
	}

	eng, err := def.Build(
		engine.WithLogger(c.log),
		engine.WithMetrics(engine.NewMetrics(c.registry)),
		engine.WithWorkers(c.workers),
	)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "build engine")
	}

	st, err := c.openStore(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	sys, err := fuzzy.New(fuzzy.Options{
		Engine:   eng,
		Store:    st,
		Universe: def.Universe(),
		Source:   def.Name,
		Logger:   c.log,
	})
	if err != nil {
		st.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := sys.Close(); err != nil {
			c.log.Warn("close journal", zap.Error(err))
		}
	}
	return sys, def, cleanup, nil
}

func (c *cli) openStore(ctx context.Context) (store.Store, error) {
	if c.dbPath == "" {
		return memstore.New(), nil
	}
	st, err := sqlite.OpenSQLite(ctx, c.dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	return st, nil
}
