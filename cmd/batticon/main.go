package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/batticon/pkg/config"
	"github.com/charlie0129/batticon/pkg/power"
	"github.com/charlie0129/batticon/pkg/style"
	"github.com/charlie0129/batticon/pkg/text"
)

var (
	logLevel   = "info"
	configPath = ""
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, power.ErrNoBattery):
		fmt.Fprintln(os.Stderr, "\nError: no battery found")
		fmt.Fprintln(os.Stderr, "  - Set 'debug: true' in the config file to use a simulated battery")
	case errors.Is(err, config.ErrUnknownKey):
		fmt.Fprintln(os.Stderr, "\nValid config keys: "+strings.Join(config.Keys(), ", "))
	case errors.Is(err, style.ErrUnknownVariant):
		fmt.Fprintln(os.Stderr, "\nValid status styles: "+joinStrings(style.Variants()))
	case errors.Is(err, text.ErrUnknownFamily):
		fmt.Fprintln(os.Stderr, "\nValid font families: "+joinStrings(text.Families()))
	}
}

func joinStrings[T fmt.Stringer](items []T) string {
	names := make([]string, 0, len(items))
	for _, i := range items {
		names = append(names, i.String())
	}
	return strings.Join(names, ", ")
}

func main() {
	// A local .env may set BATTICON_CONFIG.
	_ = godotenv.Load()

	// The tray needs the main thread on some platforms.
	runtime.LockOSThread()

	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batticon",
		Short: "batticon draws battery status icons",
		Long: `batticon draws battery status icons.

It renders the battery level as a small icon in one of several styles, either
once to a PNG file or continuously into the system tray.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", config.DefaultPath(), "config file path (env "+config.EnvPath+")")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewVersionCommand(),
		NewRenderCommand(),
		NewGalleryCommand(),
		NewTrayCommand(),
		NewWatchCommand(),
		NewStatusCommand(),
		NewConfigCommand(),
	)

	return cmd
}

func loadConfig() (*config.File, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logrus.WithFields(conf.LogrusFields()).Debug("config loaded")
	return conf, nil
}
