package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"

	"github.com/handiism/spotify-downloader/internal/config"
	"github.com/handiism/spotify-downloader/internal/download"
	"github.com/handiism/spotify-downloader/internal/librespot"
	"github.com/handiism/spotify-downloader/internal/spotify"
)

var (
	errorPrefix   = color.New(color.FgRed, color.Bold).Sprint("error:  ")
	warningPrefix = color.New(color.FgYellow).Sprint("warning:")
	successPrefix = color.New(color.FgGreen).Sprint("ok:     ")
	infoPrefix    = color.New(color.FgCyan).Sprint("info:   ")
	verbosePrefix = color.New(color.Faint).Sprint("        ")
)

func main() {
	var (
		configFlag   = pflag.StringP("config", "c", "", "Path to config file (JSON or YAML)")
		outputFlag   = pflag.StringP("output", "o", "", "Output directory (overrides config)")
		playlistFlag = pflag.BoolP("playlist", "p", false, "Create a playlist file per album or playlist")
		verboseFlag  = pflag.BoolP("verbose", "v", false, "Show verbose output")
		dryRunFlag   = pflag.Bool("dry-run", false, "Resolve references without downloading")
		noTagsFlag   = pflag.Bool("no-tags", false, "Do not run the tagging command")
	)

	pflag.Usage = func() {
		fmt.Println("Spotify Downloader - Download Ogg Vorbis tracks from Spotify")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  spotify-dl [options] <username> <password> <tracks_file>")
		fmt.Println()
		fmt.Println("Use - as password to be prompted for it, and - as tracks_file to read standard input.")
		fmt.Println("For interactive mode, use: spotify-tui")
		fmt.Println()
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() < 3 {
		pflag.Usage()
		return
	}
	username, password, tracksPath := pflag.Arg(0), pflag.Arg(1), pflag.Arg(2)
	if password == "-" && tracksPath == "-" {
		fmt.Fprintln(os.Stderr, "Error: password prompt and tracks from standard input cannot be combined")
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *outputFlag != "" {
		settings.DownloadsPath = *outputFlag
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	if *noTagsFlag {
		settings.ModifyTags = false
	}

	input, err := openInput(tracksPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening tracks file: %v\n", err)
		os.Exit(1)
	}
	defer input.Close()

	if password == "-" {
		if err := survey.AskOne(&survey.Password{Message: "Password for " + username + ":"}, &password); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
			os.Exit(1)
		}
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	session, err := librespot.Connect(ctx, spotify.Credentials{Username: username, Password: password}, settings.DeviceName)
	if err != nil {
		exitOnError(ctx, "Error logging in", err)
	}
	defer session.Close()

	manager := download.NewManager(settings, session, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}
		fmt.Println(levelPrefix(event.Level), event.Message)
	})

	if err := manager.Initialize(ctx, input); err != nil {
		exitOnError(ctx, "Error reading references", err)
	}

	for _, name := range manager.GetCollectionNames() {
		fmt.Println(infoPrefix, name)
	}

	if *dryRunFlag {
		fmt.Printf("\n[Dry run - %d track(s) queued, not downloading]\n", len(manager.Queue()))
		for _, id := range manager.Queue() {
			fmt.Println("  " + id.URI(spotify.KindTrack))
		}
		return
	}

	err = manager.StartDownloads(ctx)
	printSummary(manager.Results())
	if err != nil {
		exitOnError(ctx, "Error during download", err)
	}

	received, processed, total := manager.GetProgress()
	fmt.Printf("\nProcessed %d/%d tracks (%.2f MB)\n", processed, total, float64(received)/1024/1024)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func exitOnError(ctx context.Context, msg string, err error) {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		fmt.Println("\nDownload cancelled.")
		os.Exit(130)
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

func levelPrefix(level download.ProgressLevel) string {
	switch level {
	case download.LevelError:
		return errorPrefix
	case download.LevelWarning:
		return warningPrefix
	case download.LevelSuccess:
		return successPrefix
	case download.LevelInfo:
		return infoPrefix
	default:
		return verbosePrefix
	}
}

func printSummary(results []download.Result) {
	if len(results) == 0 {
		return
	}

	fmt.Println()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Track", "Name", "Status", "Detail"})
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, r := range results {
		name, detail := "", ""
		if r.Track != nil {
			name = r.Track.ArtistNames() + " - " + r.Track.Title
			detail = r.Track.Path
		}
		if r.Err != nil {
			detail = r.Err.Error()
		}
		table.Append([]string{r.Requested.String(), name, r.Status.String(), detail})
	}
	table.Render()
}
