package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/batticon/pkg/daemon"
	"github.com/charlie0129/batticon/pkg/style"
	"github.com/charlie0129/batticon/pkg/tray"
	"github.com/charlie0129/batticon/pkg/version"
)

func NewTrayCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "tray",
		Short:   "Show the battery icon in the system tray",
		GroupID: gBasic,
		Long: `Show the battery icon in the system tray.

The icon is redrawn whenever the battery status or the config changes. Send
SIGHUP to reload the config file.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("batticon tray starting")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var h daemon.Handle
			startErr := make(chan error, 1)
			tray.Run(tray.Options{
				OnReady: func(t *tray.Tray) {
					d, err := daemon.New(daemon.Options{ConfigPath: configPath, Sink: t.Apply})
					if err != nil {
						startErr <- err
						tray.Quit()
						return
					}
					h.Set(d)
					go func() {
						if err := d.RunUntilSignal(ctx); err != nil {
							logrus.WithError(err).Error("indicator stopped")
						}
						tray.Quit()
					}()
				},
				// Style clicks arrive on their own goroutines and may beat
				// OnReady.
				OnStyle: func(v style.Variant) {
					if err := h.SetStatusStyle(v); err != nil {
						logrus.WithError(err).Error("failed to save status style")
					}
				},
				OnExit: cancel,
			})
			select {
			case err := <-startErr:
				return err
			default:
				return nil
			}
		},
	}
}
