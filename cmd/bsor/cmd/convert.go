package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oy3o/bsor"
	"github.com/oy3o/bsor/internal/config"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode [in.bsor] [out.json]",
	Short: "Decode a replay into JSON",
	Long: `Decode a BSOR replay and write it as indented JSON.

Missing paths are asked for on standard input.

Example:
  bsor decode replay.bsor replay.json`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		args, err := argsOrPrompt(cmd, args,
			"Enter the path to the .bsor file",
			"Enter the path to save the .json file")
		if err != nil {
			return err
		}
		if err := convertFile(args[0], args[1], cfg, toJSON); err != nil {
			return err
		}
		cmd.Printf("Decoded JSON saved to %s\n", args[1])
		return nil
	},
}

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode [in.json] [out.bsor]",
	Short: "Encode JSON into a replay",
	Long: `Encode a JSON replay, as written by decode, into a BSOR file.

Missing paths are asked for on standard input.

Example:
  bsor encode replay.json replay.bsor`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		args, err := argsOrPrompt(cmd, args,
			"Enter the path to the JSON file",
			"Enter the path to save the .bsor file")
		if err != nil {
			return err
		}
		if err := convertFile(args[0], args[1], cfg, toBSOR); err != nil {
			return err
		}
		cmd.Printf(".bsor file saved to %s\n", args[1])
		return nil
	},
}

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert between BSOR and JSON, whichever the input is",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := convertFile(args[0], args[1], cfg, sniffed); err != nil {
			return err
		}
		cmd.Printf("Converted %s to %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(convertCmd)
}

// conversion reads one representation from r and writes the other to w.
type conversion func(r io.Reader, w io.Writer, c *config.Config) error

// toJSON decodes a replay and writes it as JSON.
func toJSON(r io.Reader, w io.Writer, c *config.Config) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	replay, err := (&bsor.Decoder{Strict: c.Decode.Strict}).Decode(data)
	if err != nil {
		return err
	}
	logger.Debug("decoded replay", "bytes", len(data), "sections", fmt.Sprint(replay.Sections()))

	enc := json.NewEncoder(w)
	enc.SetIndent("", c.Output.Indent)
	return enc.Encode(replay)
}

// toBSOR parses a JSON replay and encodes it. With decode.strict set the
// replay must also carry every section, so it decodes strictly again.
func toBSOR(r io.Reader, w io.Writer, c *config.Config) error {
	var replay bsor.Replay
	if err := json.NewDecoder(r).Decode(&replay); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	if c.Encode.Validate {
		validate := replay.Validate
		if c.Decode.Strict {
			validate = replay.ValidateStrict
		}
		if err := validate(); err != nil {
			return err
		}
	}
	n, err := replay.WriteTo(w)
	if err != nil {
		return err
	}
	logger.Debug("encoded replay", "bytes", n, "sections", fmt.Sprint(replay.Sections()))
	return nil
}

// sniffed picks the direction from the first bytes of r.
func sniffed(r io.Reader, w io.Writer, c *config.Config) error {
	r, isReplay, err := bsor.Sniff(r)
	if err != nil {
		return err
	}
	if isReplay {
		return toJSON(r, w, c)
	}
	return toBSOR(r, w, c)
}

// convertFile runs conv from the file in to the file out. The result is held
// in memory and out is only written when conv succeeds, so a failed
// conversion leaves no file behind.
func convertFile(in, out string, c *config.Config, conv conversion) error {
	src, err := os.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	var buf bytes.Buffer
	if err := conv(src, &buf, c); err != nil {
		logger.Error("conversion failed", "in", in, "out", out, "err", err)
		return fmt.Errorf("%s: %w", in, err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return err
	}
	logger.Info("converted", "in", in, "out", out, "bytes", buf.Len())
	return nil
}
