package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/oy3o/bsor/archive"
)

// archiveCmd represents the archive command group
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Store and retrieve replays in the local archive",
}

var archivePutCmd = &cobra.Command{
	Use:   "put <in.bsor>...",
	Short: "Add replays to the archive",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(a *archive.Archive) error {
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				id, err := a.Put(data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				logger.Info("archived replay", "path", path, "id", id)
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		})
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <id> [out.json]",
	Short: "Write an archived replay as JSON, to stdout without a path",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return err
		}
		return withArchive(cmd, func(a *archive.Archive) error {
			replay, err := a.Get(id)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			enc.SetIndent("", cfg.Output.Indent)
			if err := enc.Encode(replay); err != nil {
				return err
			}
			if len(args) == 2 {
				return os.WriteFile(args[1], buf.Bytes(), 0644)
			}
			_, err = buf.WriteTo(cmd.OutOrStdout())
			return err
		})
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived replay ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		player, _ := cmd.Flags().GetString("player")
		return withArchive(cmd, func(a *archive.Archive) error {
			ids, err := a.List(player)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, id.Time().UTC().Format(time.RFC3339))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archivePutCmd, archiveGetCmd, archiveListCmd)
	archiveCmd.PersistentFlags().String("dir", "", "Archive directory (default from config)")
	archiveListCmd.Flags().String("player", "", "Only list replays of this player id")
}

// withArchive opens the archive for the duration of fn.
func withArchive(cmd *cobra.Command, fn func(*archive.Archive) error) error {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = cfg.Archive.Dir
	}
	a, err := archive.Open(dir)
	if err != nil {
		return err
	}
	a.Decoder.Strict = cfg.Decode.Strict
	logger.Debug("archive opened", "dir", dir)

	if err := fn(a); err != nil {
		_ = a.Close()
		return err
	}
	return a.Close()
}
