package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/handiism/spotify-downloader/internal/config"
	"github.com/handiism/spotify-downloader/internal/librespot"
	"github.com/handiism/spotify-downloader/internal/spotify"
	"github.com/handiism/spotify-downloader/internal/tui"
)

func main() {
	configFlag := pflag.StringP("config", "c", "", "Path to config file (JSON or YAML)")
	outputFlag := pflag.StringP("output", "o", "", "Output directory (overrides config)")
	pflag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *outputFlag != "" {
		settings.DownloadsPath = *outputFlag
	}

	if err := tui.Run(settings, connect); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func connect(ctx context.Context, creds spotify.Credentials, deviceName string) (spotify.Session, error) {
	session, err := librespot.Connect(ctx, creds, deviceName)
	if err != nil {
		return nil, err
	}
	return session, nil
}
