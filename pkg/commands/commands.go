package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/editor"
	"tableflip.dev/diary/pkg/store"
)

var (
	root   = &options.RootOptions{}
	logger = zap.NewNop()
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diary",
		Short: options.Wrap80("A diary on the command line. Run without a command to write today's page."),
		Example: `
diary
diary list -n 5
diary show --on=yesterday
`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := newLogger(root.Verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
		// main reports errors.
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToday(cmd)
		},
	}

	options.AddRootArgs(cmd, root)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addList(topLevel)
	addNew(topLevel)
	addEdit(topLevel)
	addToday(topLevel)
	addShow(topLevel)
	addSearch(topLevel)
	addEditID(topLevel)
	addRemove(topLevel)
	addCheck(topLevel)
	addInit(topLevel)
	addConfig(topLevel)
	addInfo(topLevel)
	addWatch(topLevel)
	addBrowse(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}

// newLogger logs to stderr so it never mixes with command output.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func loadConfig() (store.Config, error) {
	cfg, err := store.LoadConfig(root.Dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded config",
		zap.String("dir", cfg.BasePath()),
		zap.String("editor", cfg.Editor()))
	return cfg, nil
}

// loadService wires config, persistence and the editor for a command.
func loadService() (*app.Service, store.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := &app.Service{
		Persistence: p,
		Editor:      editor.New(cfg.Editor()),
		Author:      cfg.Author(),
		Logger:      logger,
	}
	return svc, cfg, nil
}
