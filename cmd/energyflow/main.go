package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/energyflow/internal/cli"
	"github.com/julianstephens/energyflow/internal/config"
	"github.com/julianstephens/energyflow/internal/constants"
	"github.com/julianstephens/energyflow/internal/errors"
	"github.com/julianstephens/energyflow/internal/keyring"
	"github.com/julianstephens/energyflow/internal/logger"
	"github.com/julianstephens/energyflow/internal/planner"
	"github.com/julianstephens/energyflow/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"Store location: an SQLite file, a *.json file, a PostgreSQL connection string without credentials, or 'keyring'. Defaults to ${env} from the environment, then ${default_store}." type:"string"`
	AppConfig string `help:"Application config (YAML or JSON)." type:"path" default:"${default_app_config}"`
	Debug     bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize energyflow storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Quiz     cli.QuizCmd     `cmd:"" help:"Take the energy quiz and store your profile."`
	Profile  cli.ProfileCmd  `cmd:"" help:"Show your energy profile and curve."`
	Zone     cli.ZoneCmd     `cmd:"" help:"Show the current energy zone."`
	Plan     cli.PlanCmd     `cmd:"" help:"Schedule tasks into energy-matched slots."`
	Board    cli.BoardCmd    `cmd:"" help:"Manage the morning/afternoon/evening task board."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage scheduling settings."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage store backups."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Serve    cli.ServeCmd    `cmd:"" help:"Run the HTTP API server."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Diag     cli.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

// unloadedCommands manage the store themselves or must work without one.
var unloadedCommands = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Energy-aware task scheduler"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":            constants.Version,
			"env":                constants.EnvDBConnection,
			"default_store":      constants.DefaultConfigPath,
			"default_app_config": constants.DefaultAppConfig,
		},
	)
	command := ""
	if fields := strings.Fields(ctx.Command()); len(fields) > 0 {
		command = fields[0]
	}

	appConfig := config.NewManager(CLI.AppConfig)
	cfg, err := appConfig.Load()
	if err != nil {
		errors.Fatal(errors.WithHint(err, "fix or remove "+CLI.AppConfig))
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || cfg.Log.Debug,
		ConfigDir: filepath.Dir(CLI.AppConfig),
		Stderr:    command == "serve",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	defer func() { _ = logger.Close() }()

	dsn, err := keyring.ResolveDSN(CLI.Config, constants.DefaultConfigPath)
	if err != nil {
		errors.Fatal(err)
	}
	store, err := storage.Open(dsn)
	if err != nil {
		errors.Fatal(err)
	}
	defer func() { _ = store.Close() }()

	appCtx := &cli.Context{
		Store:  store,
		Config: appConfig,
		Debug:  CLI.Debug,
	}

	if !unloadedCommands[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(errors.WithHint(err, "run 'energyflow init' to create the store"))
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		if stderrors.Is(err, planner.ErrProfileMissing) {
			err = errors.WithHint(err, "run 'energyflow quiz' to create your energy profile")
		}
		errors.Fatal(err)
	}
}
