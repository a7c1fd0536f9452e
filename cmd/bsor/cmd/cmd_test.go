package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oy3o/bsor"
	"github.com/oy3o/bsor/internal/config"
)

func testReplay() *bsor.Replay {
	return &bsor.Replay{
		Info: &bsor.Info{
			PlayerID:   "76561198000000001",
			PlayerName: "tester",
			Platform:   "oculus",
			SongName:   "Song",
			Difficulty: "Hard",
			Mode:       "Standard",
			Score:      4321,
		},
		Frames: []bsor.Frame{{Time: 0.5, FPS: 72}, {Time: 1, FPS: 72}},
		Notes: []bsor.Note{
			{NoteID: 1, EventTime: 1, EventType: bsor.NoteGood, CutInfo: &bsor.CutInfo{SpeedOK: true, SaberSpeed: 3}},
			{NoteID: 2, EventTime: 2, EventType: bsor.NoteMiss},
		},
		Walls:   []bsor.Wall{},
		Heights: []bsor.Height{{Height: 1.75, Time: 0}},
		Pauses:  []bsor.Pause{{Duration: 10_000_000, Time: 3}},
	}
}

func writeReplay(t *testing.T, dir string) (string, []byte) {
	t.Helper()
	data, err := bsor.Encode(testReplay())
	require.NoError(t, err)
	path := filepath.Join(dir, "in.bsor")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path, data
}

// run executes the root command with args and returns what it wrote to stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	// flag values outlive an Execute call
	require.NoError(t, rootCmd.PersistentFlags().Set("config", ""))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConvertFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	in, data := writeReplay(t, dir)
	jsonPath := filepath.Join(dir, "out.json")
	back := filepath.Join(dir, "back.bsor")
	c := config.DefaultConfig()

	require.NoError(t, convertFile(in, jsonPath, c, toJSON))
	text, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(text), "\n  \"info\": {")
	assert.Contains(t, string(text), `"noteCutInfo"`)

	require.NoError(t, convertFile(jsonPath, back, c, toBSOR))
	again, err := os.ReadFile(back)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestConvertFile_Sniffed(t *testing.T) {
	dir := t.TempDir()
	in, data := writeReplay(t, dir)
	jsonPath := filepath.Join(dir, "sniffed.json")
	back := filepath.Join(dir, "sniffed.bsor")
	c := config.DefaultConfig()

	require.NoError(t, convertFile(in, jsonPath, c, sniffed))
	var replay bsor.Replay
	text, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(text, &replay))
	assert.Equal(t, testReplay(), &replay)

	require.NoError(t, convertFile(jsonPath, back, c, sniffed))
	again, err := os.ReadFile(back)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestConvertFile_Errors(t *testing.T) {
	dir := t.TempDir()
	c := config.DefaultConfig()

	t.Run("missing input", func(t *testing.T) {
		out := filepath.Join(dir, "never.json")
		err := convertFile(filepath.Join(dir, "missing.bsor"), out, c, toJSON)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.NoFileExists(t, out)
	})

	t.Run("strict decode", func(t *testing.T) {
		data, err := bsor.Encode(&bsor.Replay{Heights: []bsor.Height{}})
		require.NoError(t, err)
		in := filepath.Join(dir, "partial.bsor")
		require.NoError(t, os.WriteFile(in, data, 0600))

		require.NoError(t, convertFile(in, filepath.Join(dir, "partial.json"), c, toJSON))

		strict := config.DefaultConfig()
		strict.Decode.Strict = true
		out := filepath.Join(dir, "strict.json")
		err = convertFile(in, out, strict, toJSON)
		assert.ErrorIs(t, err, bsor.ErrTruncatedData)
		assert.NoFileExists(t, out)
	})

	t.Run("failure keeps existing output", func(t *testing.T) {
		in := filepath.Join(dir, "garbage.bsor")
		require.NoError(t, os.WriteFile(in, []byte{0x69, 0x3d, 0x2d, 0x44, 1, 1, 0xff}, 0600))
		out := filepath.Join(dir, "kept.json")
		require.NoError(t, os.WriteFile(out, []byte("{}"), 0600))

		err := convertFile(in, out, c, toJSON)
		assert.ErrorIs(t, err, bsor.ErrTruncatedData)
		kept, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(kept))
	})

	t.Run("strict encode", func(t *testing.T) {
		in := filepath.Join(dir, "walls.json")
		require.NoError(t, os.WriteFile(in, []byte(`{"walls":[]}`), 0600))
		out := filepath.Join(dir, "walls.bsor")

		strict := config.DefaultConfig()
		strict.Decode.Strict = true
		err := convertFile(in, out, strict, toBSOR)
		assert.ErrorIs(t, err, bsor.ErrMissingSection)
		assert.NoFileExists(t, out)

		require.NoError(t, convertFile(in, out, c, toBSOR))
		assert.FileExists(t, out)
	})

	t.Run("validation", func(t *testing.T) {
		in := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(in, []byte(`{"notes":[{"noteID":1,"eventType":0}]}`), 0600))

		err := convertFile(in, filepath.Join(dir, "bad.bsor"), c, toBSOR)
		assert.ErrorIs(t, err, bsor.ErrCutInfoMismatch)
		assert.NoFileExists(t, filepath.Join(dir, "bad.bsor"))

		lax := config.DefaultConfig()
		lax.Encode.Validate = false
		assert.NoError(t, convertFile(in, filepath.Join(dir, "bad.bsor"), lax, toBSOR))
	})

	t.Run("malformed json", func(t *testing.T) {
		in := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(in, []byte(`{"info":`), 0600))
		err := convertFile(in, filepath.Join(dir, "broken.bsor"), c, sniffed)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse JSON")
		assert.NoFileExists(t, filepath.Join(dir, "broken.bsor"))
	})
}

func TestArgsOrPrompt(t *testing.T) {
	newCmd := func(stdin string) (*cobra.Command, *bytes.Buffer) {
		var out bytes.Buffer
		c := &cobra.Command{}
		c.SetIn(strings.NewReader(stdin))
		c.SetOut(&out)
		return c, &out
	}

	t.Run("all given", func(t *testing.T) {
		c, out := newCmd("")
		args, err := argsOrPrompt(c, []string{"a", "b"}, "first", "second")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, args)
		assert.Empty(t, out.String())
	})

	t.Run("prompts for missing", func(t *testing.T) {
		c, out := newCmd("  b.json \n")
		args, err := argsOrPrompt(c, []string{"a.bsor"}, "first", "second")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.bsor", "b.json"}, args)
		assert.Equal(t, "second: ", out.String())
	})

	t.Run("input ends", func(t *testing.T) {
		c, _ := newCmd("only\n")
		_, err := argsOrPrompt(c, nil, "first", "second")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "second")
	})

	t.Run("empty answer", func(t *testing.T) {
		c, _ := newCmd("\n")
		_, err := argsOrPrompt(c, nil, "first")
		assert.Error(t, err)
	})
}

func TestWriteSummary(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeSummary(&out, testReplay(), 1234))

	text := out.String()
	assert.Contains(t, text, "1234 bytes")
	assert.Regexp(t, `frames\s+2\n`, text)
	assert.Regexp(t, `walls\s+0\n`, text)
	assert.Regexp(t, `player\s+tester \(76561198000000001\)`, text)
	assert.Regexp(t, `song\s+Song \[Standard Hard\]`, text)
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	in, data := writeReplay(t, dir)

	t.Run("decode with prompts", func(t *testing.T) {
		out := filepath.Join(dir, "prompted.json")
		stdout, err := run(t, in+"\n"+out+"\n", "decode")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Enter the path to the .bsor file: ")
		assert.FileExists(t, out)
	})

	t.Run("encode", func(t *testing.T) {
		jsonPath := filepath.Join(dir, "cmd.json")
		bsorPath := filepath.Join(dir, "cmd.bsor")
		_, err := run(t, "", "decode", in, jsonPath)
		require.NoError(t, err)
		_, err = run(t, "", "encode", jsonPath, bsorPath)
		require.NoError(t, err)

		again, err := os.ReadFile(bsorPath)
		require.NoError(t, err)
		assert.Equal(t, data, again)
	})

	t.Run("inspect", func(t *testing.T) {
		stdout, err := run(t, "", "inspect", in)
		require.NoError(t, err)
		assert.Regexp(t, `notes\s+2\n`, stdout)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		c := config.DefaultConfig()
		c.Logging.Level = "debug"
		require.NoError(t, config.SaveConfig(c, path))

		_, err := run(t, "", "--config", path, "inspect", in)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logging.Level)

		_, err = run(t, "", "--config", filepath.Join(dir, "nope.yaml"), "inspect", in)
		assert.Error(t, err)
	})

	t.Run("archive", func(t *testing.T) {
		archiveDir := filepath.Join(dir, "archive")

		stdout, err := run(t, "", "archive", "put", "--dir", archiveDir, in)
		require.NoError(t, err)
		id := strings.TrimSpace(stdout)
		assert.Len(t, id, 27)

		stdout, err = run(t, "", "archive", "list", "--dir", archiveDir, "--player", "76561198000000001")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, id+"\t"))

		stdout, err = run(t, "", "archive", "get", "--dir", archiveDir, id)
		require.NoError(t, err)
		var replay bsor.Replay
		require.NoError(t, json.Unmarshal([]byte(stdout), &replay))
		assert.Equal(t, testReplay(), &replay)

		out := filepath.Join(dir, "archived.json")
		stdout, err = run(t, "", "archive", "get", "--dir", archiveDir, id, out)
		require.NoError(t, err)
		assert.Empty(t, stdout)
		text, err := os.ReadFile(out)
		require.NoError(t, err)
		var fromFile bsor.Replay
		require.NoError(t, json.Unmarshal(text, &fromFile))
		assert.Equal(t, testReplay(), &fromFile)

		_, err = run(t, "", "archive", "get", "--dir", archiveDir, "not-an-id")
		assert.Error(t, err)
	})
}
