package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"autosig/internal/format"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported formats and their capabilities",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "%-6s %-12s %-6s %s\n", "TAG", "ALIASES", "WRITE", "NOTES")
		for _, tag := range format.All() {
			var notes []string
			if format.IsLayered(tag) {
				notes = append(notes, "layered")
			}
			if format.IsMultiFrame(tag) {
				notes = append(notes, "first frame only")
			}
			if format.IsOpaque(tag) {
				notes = append(notes, "no alpha")
			}
			write := "no"
			if format.CanEncode(tag) {
				write = "yes"
			}
			fmt.Fprintf(os.Stdout, "%-6s %-12s %-6s %s\n",
				tag, strings.Join(format.Aliases(tag), ","), write, strings.Join(notes, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
