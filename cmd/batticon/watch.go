package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/batticon/pkg/daemon"
	"github.com/charlie0129/batticon/pkg/indicator"
)

// writeFrame replaces path with the PNG of f. A missing frame removes the
// file.
func writeFrame(path string, f indicator.Frame) error {
	b, err := f.PNG()
	if err != nil {
		return err
	}
	if b == nil {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	// Write then rename, so readers never see a partial image.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".batticon-*.png")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func NewWatchCommand() *cobra.Command {
	var (
		output    string
		companion string
	)

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   "Keep a PNG file in sync with the battery",
		GroupID: gAdvanced,
		Long: `Keep a PNG file in sync with the battery status without a system tray.

The file is rewritten on every change, which suits status bars that display
an image file. It is removed while there is no battery or the style is hidden.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			sink := func(u indicator.Update) {
				if err := writeFrame(output, u.Panel); err != nil {
					logrus.WithError(err).Error("failed to write icon")
				}
				if companion != "" {
					if err := writeFrame(companion, u.Companion); err != nil {
						logrus.WithError(err).Error("failed to write companion icon")
					}
				}
				logrus.Debug(u.Tooltip())
			}

			d, err := daemon.New(daemon.Options{ConfigPath: configPath, Sink: sink})
			if err != nil {
				return err
			}
			return d.RunUntilSignal(context.Background())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "battery.png", "panel icon file")
	f.StringVar(&companion, "companion", "", "companion icon file (disabled when empty)")

	return cmd
}
