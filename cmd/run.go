package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"autosig/internal/batch"
	"autosig/internal/config"
	"autosig/internal/tui"
	"autosig/internal/ui"
)

var (
	runPixels          int
	runPercent         float64
	runMaxDimension    int
	runSuffix          string
	runFormat          string
	runQuality         int
	runInputFormats    []string
	runExcludeSuffixes []string
	runOverwrite       bool
	runSkipExisting    bool
	runHideLayers      []string
	runCropPortrait    string
	runCropLandscape   string
	runNoSignature     bool
	runNoTUI           bool
	runVerbose         bool
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <directory> [signature]",
	Short: "Process all matching images in a directory",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := config.Options{
			Directory:       args[0],
			NoSignature:     runNoSignature,
			OffsetPixels:    runPixels,
			OffsetPercent:   runPercent,
			MaxDimension:    runMaxDimension,
			Suffix:          runSuffix,
			SuffixSet:       cmd.Flags().Changed("suffix"),
			OutputFormat:    runFormat,
			Quality:         runQuality,
			InputFormats:    runInputFormats,
			ExcludeSuffixes: runExcludeSuffixes,
			Overwrite:       runOverwrite,
			SkipExisting:    runSkipExisting,
			HideLayers:      runHideLayers,

			MaxPortraitRatio:  runCropPortrait,
			MaxLandscapeRatio: runCropLandscape,
		}
		if len(args) > 1 {
			opts.SignaturePath = args[1]
		}

		cfg, err := config.New(opts)
		if err != nil {
			ui.NewConsole(runVerbose).Fatal(err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if runNoTUI || !isatty.IsTerminal(os.Stdout.Fd()) {
			return runPlain(ctx, cfg)
		}
		return runInteractive(ctx, stop, cfg)
	},
}

func runPlain(ctx context.Context, cfg *config.Config) error {
	console := ui.NewConsole(runVerbose)
	report, err := batch.NewRunner(cfg, console).Run(ctx)
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

func runInteractive(ctx context.Context, cancel func(), cfg *config.Config) error {
	events := make(chan tui.Event, 64)
	program := tea.NewProgram(tui.NewModel(events, cancel))

	uiDone := make(chan struct{})
	go func() {
		_, _ = program.Run()
		close(uiDone)
	}()

	report, err := batch.NewRunner(cfg, tui.NewUI(events)).Run(ctx)

	close(events)
	<-uiDone
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

func printReport(report *batch.Report) {
	fmt.Fprintln(os.Stdout, tui.RenderSummary(tui.SummaryRows(report)))
	if list := tui.RenderSkipList(report.Skipped); list != "" {
		fmt.Fprintln(os.Stdout, list)
	}
}

func init() {
	runCmd.Flags().IntVarP(&runPixels, "pixels", "p", config.DefaultOffsetPixels,
		"pixel offset from right and bottom edges")
	runCmd.Flags().Float64Var(&runPercent, "percent", -1,
		"percentage offset from right and bottom edges, 0-50 (overrides --pixels)")
	runCmd.Flags().IntVarP(&runMaxDimension, "max-dimension", "m", 0,
		"scale output so the larger dimension does not exceed this")
	runCmd.Flags().StringVar(&runSuffix, "suffix", config.DefaultSuffix,
		"output filename suffix (may be empty)")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", config.DefaultOutputFormatTag,
		"output format (png, jpg, gif, tiff, bmp, webp)")
	runCmd.Flags().IntVarP(&runQuality, "quality", "q", config.DefaultQuality,
		"output quality for lossy formats, 1-100")
	runCmd.Flags().StringSliceVar(&runInputFormats, "input-formats", nil,
		"only process these input formats (default: all supported)")
	runCmd.Flags().StringSliceVar(&runExcludeSuffixes, "exclude-suffix", nil,
		"additional filename suffixes to exclude from discovery")
	runCmd.Flags().BoolVarP(&runOverwrite, "overwrite", "y", false,
		"overwrite existing output files without prompting")
	runCmd.Flags().BoolVarP(&runSkipExisting, "skip-existing", "s", false,
		"skip files whose output already exists without prompting")
	runCmd.Flags().StringArrayVar(&runHideLayers, "hide-layer", nil,
		"PSD layer name or 0-based index to hide before compositing (repeatable)")
	runCmd.Flags().StringVar(&runCropPortrait, "crop-portrait", "",
		"max W:H ratio for portrait/square images; taller images are center-cropped")
	runCmd.Flags().StringVar(&runCropLandscape, "crop-landscape", "",
		"max W:H ratio for landscape images; wider images are center-cropped")
	runCmd.Flags().BoolVar(&runNoSignature, "no-signature", false,
		"process without applying a signature")
	runCmd.Flags().BoolVar(&runNoTUI, "no-tui", false,
		"plain line output instead of the interactive progress view")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false,
		"verbose logging (plain mode)")

	rootCmd.AddCommand(runCmd)
}
