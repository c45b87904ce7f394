package main

import (
	"fmt"
	"os"

	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hdrnorm/internal/config"
	"hdrnorm/internal/coords"
	"hdrnorm/internal/header"
	"hdrnorm/internal/normalize"
	"hdrnorm/internal/shorten"
)

// app holds the flag values and the state shared by all commands.
type app struct {
	root *cobra.Command

	// Global flags
	configPath string
	verbose    bool

	// Normalization flags
	separator string
	shorten   bool
	limit     int
	policy    string
	columns   []string
	epochs    bool
	catalog   string
	arrowPath string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	a.root = &cobra.Command{
		Use:   "hdrnorm <input> <output>",
		Short: "Normalize a header metadata document",
		Long: `hdrnorm reads a YAML header document (meta + rows), flattens nested
sections into composite keys, optionally shortens keys longer than the
format limit and projects selected header values into table columns.

Settings come from defaults, the --config file, HDRNORM_* environment
variables and flags, later sources overriding earlier ones.`,
		Args:              cobra.ExactArgs(2),
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runNormalize,
	}

	pf := a.root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	f := a.root.Flags()
	f.StringVar(&a.separator, "separator", "", "Separator for flattened keys (default \"-\")")
	f.BoolVar(&a.shorten, "shorten", false, "Shorten keys longer than --limit")
	f.IntVar(&a.limit, "limit", shorten.DefaultLimit, "Maximum key length when shortening")
	f.StringVar(&a.policy, "policy", "", "Collision policy: error, overwrite or suffix (default \"error\")")
	f.StringArrayVar(&a.columns, "column", nil, "Project a header value as a column: KEY or A/B, optional :UNIT (repeatable)")
	f.BoolVar(&a.epochs, "epochs", false, "Project MJD/START and MJD/END as epoch_ini and epoch_end")
	f.StringVar(&a.catalog, "catalog", "", "YAML object catalog used to add RA and DEC")
	f.StringVar(&a.arrowPath, "arrow", "", "Also write the projected columns as an Arrow IPC stream")

	a.root.AddCommand(newResolveCmd(a))
	a.root.AddCommand(newRestoreCmd(a))

	return a.root
}

// setup loads the configuration and builds the logger. Arguments have been
// validated by now, so usage is no longer printed on error.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	err = a.applyFlags(&cfg)
	if err != nil {
		return err
	}

	err = cfg.Validate()
	if err != nil {
		return err
	}

	a.cfg = cfg

	lvl, _ := cfg.Level()
	if a.verbose {
		lvl = zapcore.DebugLevel
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(lvl)

	a.logger, err = logCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// applyFlags overlays the normalization flags the user set explicitly.
func (a *app) applyFlags(cfg *config.Config) error {
	f := a.root.Flags()

	if f.Changed("separator") {
		cfg.Separator = a.separator
	}

	if f.Changed("shorten") {
		cfg.Shorten.Enabled = a.shorten
	}

	if f.Changed("limit") {
		cfg.Shorten.Limit = a.limit
	}

	if f.Changed("policy") {
		p, err := shorten.ParsePolicy(a.policy)
		if err != nil {
			return err
		}

		cfg.Shorten.Policy = p
	}

	if f.Changed("column") {
		cfg.Columns = nil

		for _, s := range a.columns {
			col, err := config.ParseColumn(s)
			if err != nil {
				return err
			}

			cfg.Columns = append(cfg.Columns, col)
		}
	}

	if f.Changed("epochs") {
		cfg.Epochs = a.epochs
	}

	if f.Changed("catalog") {
		cfg.Catalog = a.catalog
	}

	return nil
}

func (a *app) runNormalize(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	doc, err := header.LoadFile(input)
	if err != nil {
		return err
	}

	a.logger.Debug("Loaded header",
		zap.String("input", input),
		zap.Int("keys", doc.Meta.Len()),
		zap.Int("rows", doc.Rows))

	opts := []normalize.Option{normalize.WithLogger(a.logger)}

	if a.cfg.Catalog != "" {
		catalog, err := coords.LoadCatalog(a.cfg.Catalog)
		if err != nil {
			return err
		}

		a.logger.Debug("Loaded catalog", zap.String("path", a.cfg.Catalog), zap.Int("objects", catalog.Len()))
		opts = append(opts, normalize.WithResolver(catalog))
	}

	res, err := normalize.New(a.cfg, opts...).Run(cmd.Context(), doc)
	if err != nil {
		return err
	}

	err = header.WriteFile(res.Output(), output)
	if err != nil {
		return err
	}

	if a.arrowPath != "" {
		err = writeArrow(res, a.arrowPath)
		if err != nil {
			return err
		}

		a.logger.Info("Wrote arrow stream", zap.String("path", a.arrowPath))
	}

	a.logger.Info("Wrote normalized header", zap.String("output", output))

	return nil
}

func writeArrow(res *normalize.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create arrow file %s: %w", path, err)
	}

	err = res.Table.WriteIPC(f, memory.DefaultAllocator)
	if err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}
