package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	fcolor "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/batticon/pkg/indicator"
	"github.com/charlie0129/batticon/pkg/power"
	"github.com/charlie0129/batticon/pkg/style"
	"github.com/charlie0129/batticon/pkg/theme"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Print the battery status and how it is drawn",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}

			var source power.Source = power.NewSystemSource()
			if conf.Debug() {
				source = power.NewMockSource(0)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			st, err := source.Status(ctx)
			if err != nil && !errors.Is(err, power.ErrNoBattery) {
				return fmt.Errorf("failed to read battery status: %w", err)
			}

			cmd.Println(bold("Battery status:"))
			cmd.Println("  Present: " + bool2Text(st.IsPresent))
			if !st.IsPresent {
				return err
			}

			state := st.State.String()
			switch st.State {
			case power.Charging:
				state = fcolor.GreenString(state)
			case power.Discharging:
				state = fcolor.RedString(state)
			}
			cmd.Printf("  State: %s\n", bold("%s", state))
			cmd.Printf("  Charge: %s\n", bold("%.1f%%", st.Percentage))

			settings := indicator.SettingsFromConfig(conf)
			panel, _ := indicator.BuildState(st, settings)
			r := style.Resolve(panel, settings.FontDescription())

			cmd.Println()
			cmd.Println(bold("Icon:"))
			cmd.Printf("  Style: %s\n", bold("%s", panel.Variant))
			cmd.Printf("  Inner: %s\n", bold("%s", panel.Inner))
			cmd.Printf("  Size: %s\n", bold("%dx%d", panel.Width, panel.Height))
			cmd.Printf("  Tier: %s\n", tierText(r.Tier))
			cmd.Printf("  Fill color: %s\n", swatch(r.FillColor))
			cmd.Printf("  Border color: %s\n", swatch(r.BorderColor))
			if r.Content == style.ContentText {
				cmd.Printf("  Label: %s (%s)\n", bold("%s", r.Text), r.Font)
			}
			return nil
		},
	}
}

func tierText(t style.Tier) string {
	switch t {
	case style.TierError:
		return fcolor.New(fcolor.Bold, fcolor.FgRed).Sprint(t)
	case style.TierWarning:
		return fcolor.New(fcolor.Bold, fcolor.FgYellow).Sprint(t)
	}
	return bold("%s", t)
}

func swatch(c color.NRGBA) string {
	return bold("%s", theme.Hex(c))
}

func bool2Text(b bool) string {
	if b {
		return fcolor.New(fcolor.Bold, fcolor.FgGreen).Sprint("✔")
	}
	return fcolor.New(fcolor.Bold, fcolor.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return fcolor.New(fcolor.Bold).Sprintf(format, a...)
}
