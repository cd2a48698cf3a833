package cli

import (
	"fmt"
	"os"

	"github.com/labdao/ganglia/internal/config"
	"github.com/labdao/ganglia/internal/instruction"
	"github.com/labdao/ganglia/internal/logging"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// VersionInfo holds build metadata injected via ldflags
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Loaded in PersistentPreRunE
	config *config.Config
	log    *log.Logger

	// Persistent flags
	verbose    bool
	configPath string
	quote      string

	versionInfo VersionInfo
}

// New creates a new CLI application
func New() *App {
	app := &App{}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "ganglia",
		Short: "Build and send container instructions to a remote executor",
		Long: `ganglia builds JSON instructions for docking containers (DiffDock, Vina,
gnina) and can forward them over a websocket to a remote executor,
printing whatever the executor streams back.

Run without a subcommand to print the default working-directory DiffDock
instruction (inputs/test.pdb, outputs/).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printInstruction(cmd, instruction.DefaultDiffDockLocalParams(), formatJSON)
		},
	}

	// Add persistent flags
	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Verbose output")
	a.rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Config file (default ./"+config.FileName+" if present)")
	a.rootCmd.PersistentFlags().StringVar(&a.quote, "quote", "",
		"Parameter quoting: none, shell or reject (overrides config)")

	a.rootCmd.AddCommand(
		NewBuildCmd(a),
		NewRunCmd(a),
		NewSendCmd(a),
		NewListCmd(a),
		NewVersionCmd(a),
	)
}

// loadConfig reads configuration and sets up logging before any command runs
func (a *App) loadConfig(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadConfigFile(a.configPath)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return fmt.Errorf("get working directory: %w", wdErr)
		}
		cfg, err = config.LoadConfig(wd)
	}
	if err != nil {
		return err
	}
	a.config = cfg

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	a.log = logging.New(level, cmd.ErrOrStderr())
	if cfg.Source != "" {
		a.log.WithField("file", cfg.Source).Info("config file loaded")
	}
	a.log.WithFields(log.Fields{
		"endpoint": cfg.Endpoint,
		"quote":    cfg.Quote,
	}).Debug("config loaded")
	return nil
}
