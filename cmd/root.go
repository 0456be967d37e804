package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/willclo1/SpyPointAnalysis/cmd/analyze"
	"github.com/willclo1/SpyPointAnalysis/cmd/events"
	"github.com/willclo1/SpyPointAnalysis/cmd/fetch"
	"github.com/willclo1/SpyPointAnalysis/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spypoint",
		Short: "Trail camera photo analysis CLI",
		Long:  "Fetches trail camera photos, resolves classifier output into observations, and clusters them into animal visit events.",
	}

	if err := setupFlags(rootCmd, settings); err != nil {
		cobra.CheckErr(err)
	}

	rootCmd.AddCommand(
		analyze.Command(settings),
		events.Command(settings),
		fetch.Command(settings),
	)

	return rootCmd
}

// setupFlags defines the global flags and binds them into viper so that
// command line arguments override the config file.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Input.ImagesDir, "images", viper.GetString("input.imagesdir"), "Directory of camera photos, one subdirectory per camera")
	rootCmd.PersistentFlags().StringVar(&settings.Input.Predictions, "predictions", viper.GetString("input.predictions"), "Path to classifier predictions JSON")
	rootCmd.PersistentFlags().StringVar(&settings.Input.Stamps, "stamps", viper.GetString("input.stamps"), "Path to OCR stamp data CSV")
	rootCmd.PersistentFlags().Float64Var(&settings.Site.Latitude, "latitude", viper.GetFloat64("site.latitude"), "Site latitude for sun and moon calculations")
	rootCmd.PersistentFlags().Float64Var(&settings.Site.Longitude, "longitude", viper.GetFloat64("site.longitude"), "Site longitude for sun and moon calculations")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	return nil
}
