package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hydro-tools/water-atlas/pkg/server"
	"github.com/hydro-tools/water-atlas/pkg/services/config"
	"github.com/hydro-tools/water-atlas/pkg/services/images"
	"github.com/hydro-tools/water-atlas/pkg/services/report"
)

var (
	cfgPath string
	addr    string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Water Atlas report server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "water-atlas.yaml",
		"Path to the configuration profile")
	rootCmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	profile, err := config.LoadProfile(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	logger.Info().Str("path", cfgPath).Str("backend", profile.BackendURL).Msg("profile loaded")

	fetcher := images.NewFetcher(images.FetcherSettings{
		BaseURL:    profile.BackendURL,
		PathPrefix: profile.OutputPathPrefix,
		Timeout:    profile.HTTPTimeout(),
		RetryMax:   profile.FetchRetryMax,
	})

	opts := report.Options{
		Geometry:      report.GeometryFromSettings(profile.Page),
		Acquirer:      fetcher,
		FooterLabel:   profile.FooterLabel,
		WatermarkText: profile.WatermarkText,
	}
	if profile.WatermarkImage != "" {
		bmp, err := images.FromFile(profile.WatermarkImage)
		if err != nil {
			logger.Warn().Err(err).Str("path", profile.WatermarkImage).Msg("failed to load watermark image")
		} else {
			opts.WatermarkImage = bmp
		}
	}
	assembler := report.NewAssembler(opts)

	api := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Generator: assembler,
		},
	})

	logger.Info().Str("addr", addr).Msg("starting report server")
	return api.Start()
}
