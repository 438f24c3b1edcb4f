package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/charlie0129/batticon/pkg/canvas"
	"github.com/charlie0129/batticon/pkg/icon"
	"github.com/charlie0129/batticon/pkg/indicator"
	"github.com/charlie0129/batticon/pkg/power"
	"github.com/charlie0129/batticon/pkg/style"
)

type galleryEntry struct {
	File        string `yaml:"file"`
	Style       string `yaml:"style"`
	Inner       string `yaml:"inner"`
	Orientation string `yaml:"orientation"`
	Percentage  int    `yaml:"percentage"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
}

// galleryStates lists every style, inner mode and orientation at each
// percentage.
func galleryStates(base style.RenderState, percentages []int) []style.RenderState {
	var states []style.RenderState
	for _, v := range style.Variants() {
		for _, inner := range style.InnerModes() {
			for _, vertical := range []bool{true, false} {
				for _, p := range percentages {
					st := base
					st.Variant = v
					st.Inner = inner
					st.Vertical = vertical
					st.Percentage = p
					states = append(states, st)
				}
			}
		}
	}
	return states
}

func galleryFileName(st style.RenderState) string {
	orientation := style.Horizontal
	if st.Vertical {
		orientation = style.Vertical
	}
	return fmt.Sprintf("%s-%s-%s-%03d.png", st.Variant, st.Inner, orientation, st.Percentage)
}

func NewGalleryCommand() *cobra.Command {
	var (
		outDir      string
		percentages []int
		height      int
	)

	cmd := &cobra.Command{
		Use:     "gallery",
		Short:   "Render every icon variant into a directory",
		GroupID: gAdvanced,
		Long: `Render every status style, inner mode and orientation at the given
percentages into a directory, together with an index.yaml describing each
file.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, p := range percentages {
				if p < 0 || p > 100 {
					return fmt.Errorf("percentage must be between 0 and 100, got %d", p)
				}
			}

			conf, err := loadConfig()
			if err != nil {
				return err
			}
			settings := indicator.SettingsFromConfig(conf)
			base, _ := indicator.BuildState(power.Status{}, settings)
			font := settings.FontDescription()
			if height > 0 {
				f := float64(height) / float64(base.Height)
				font = font.Scale(f)
				base.Width = int(math.Round(float64(base.Width) * f))
				base.Height = height
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", outDir, err)
			}

			ic, err := icon.New()
			if err != nil {
				return err
			}

			states := galleryStates(base, percentages)
			index := make([]galleryEntry, 0, len(states))

			pb := progressbar.Default(int64(len(states)))
			defer pb.Close()

			for _, st := range states {
				name := galleryFileName(st)
				c := canvas.New(st.Width, st.Height)
				if err := ic.Paint(c, style.Resolve(st, font)); err != nil {
					return fmt.Errorf("failed to render %s: %w", name, err)
				}
				if err := c.SavePNG(filepath.Join(outDir, name)); err != nil {
					return err
				}

				orientation := style.Horizontal
				if st.Vertical {
					orientation = style.Vertical
				}
				index = append(index, galleryEntry{
					File:        name,
					Style:       st.Variant.String(),
					Inner:       st.Inner.String(),
					Orientation: orientation.String(),
					Percentage:  st.Percentage,
					Width:       st.Width,
					Height:      st.Height,
				})
				_ = pb.Add(1)
			}

			b, err := yaml.Marshal(index)
			if err != nil {
				return fmt.Errorf("failed to encode index: %w", err)
			}
			if err := os.WriteFile(filepath.Join(outDir, "index.yaml"), b, 0644); err != nil {
				return fmt.Errorf("failed to write index: %w", err)
			}

			logrus.Infof("wrote %d icons to %s", len(states), outDir)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&outDir, "output", "o", "gallery", "output directory")
	f.IntSliceVarP(&percentages, "percentages", "p", []int{0, 3, 5, 10, 15, 42, 99, 100}, "percentages to render")
	f.IntVar(&height, "height", 0, "icon height in pixels (default from theme scale)")

	return cmd
}
