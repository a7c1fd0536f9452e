package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oy3o/bsor"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <in.bsor>",
	Short: "Summarize a replay",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		replay, err := (&bsor.Decoder{Strict: cfg.Decode.Strict}).Decode(data)
		if err != nil {
			return err
		}
		return writeSummary(cmd.OutOrStdout(), replay, len(data))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func entries(replay *bsor.Replay, s bsor.Section) int {
	switch s {
	case bsor.SectionInfo:
		return 1
	case bsor.SectionFrames:
		return len(replay.Frames)
	case bsor.SectionNotes:
		return len(replay.Notes)
	case bsor.SectionWalls:
		return len(replay.Walls)
	case bsor.SectionHeights:
		return len(replay.Heights)
	case bsor.SectionPauses:
		return len(replay.Pauses)
	}
	return 0
}

// writeSummary prints the section table and the headline Info fields.
func writeSummary(out io.Writer, replay *bsor.Replay, size int) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "size\t%d bytes\n", size)
	fmt.Fprintf(tw, "version\t%d\n", bsor.Version)
	fmt.Fprintln(tw, "SECTION\tENTRIES")
	for _, s := range replay.Sections() {
		fmt.Fprintf(tw, "%s\t%d\n", s, entries(replay, s))
	}
	if info := replay.Info; info != nil {
		fmt.Fprintln(tw, "FIELD\tVALUE")
		fmt.Fprintf(tw, "player\t%s (%s)\n", info.PlayerName, info.PlayerID)
		fmt.Fprintf(tw, "platform\t%s\n", info.Platform)
		fmt.Fprintf(tw, "song\t%s [%s %s]\n", info.SongName, info.Mode, info.Difficulty)
		fmt.Fprintf(tw, "score\t%d\n", info.Score)
		fmt.Fprintf(tw, "modifiers\t%s\n", info.Modifiers)
	}
	return tw.Flush()
}
