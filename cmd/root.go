package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autosig",
	Short: "autosig - batch signature placement for raster images",
	Long: "autosig processes a directory of images (PSD, PNG, JPEG, GIF, TIFF, BMP, WebP),\n" +
		"optionally hides layers, enforces aspect-ratio limits, composites a signature\n" +
		"with alpha blending, resizes, and writes output in a chosen format.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
