package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/charlie0129/batticon/pkg/config"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show or change settings",
		GroupID: gBasic,
		Long: `Show or change settings in the config file.

A running tray picks up changes on SIGHUP.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings",
			RunE: func(cmd *cobra.Command, _ []string) error {
				conf, err := loadConfig()
				if err != nil {
					return err
				}
				raw, err := config.NewRawFileConfigFromConfig(conf)
				if err != nil {
					return err
				}
				b, err := yaml.Marshal(raw)
				if err != nil {
					return fmt.Errorf("failed to encode config: %w", err)
				}
				cmd.Print(string(b))
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Run: func(cmd *cobra.Command, _ []string) {
				cmd.Println(configPath)
			},
		},
		&cobra.Command{
			Use:     "set key value",
			Short:   "Change one setting",
			Example: "  batticon config set statusStyle plump\n  batticon config set iconScale wide\n  batticon config set colors.warning '#ff8800'",
			Args:    cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				conf, err := loadConfig()
				if err != nil {
					return err
				}
				if err := conf.Set(args[0], args[1]); err != nil {
					return fmt.Errorf("failed to set %s: %w", args[0], err)
				}
				if err := conf.Save(); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				logrus.Infof("successfully set %s to %s in %s", args[0], args[1], conf.Path())
				return nil
			},
		},
	)

	return cmd
}
