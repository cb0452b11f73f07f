package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

var glyph = []uint8{
	0, 3, 3, 3, 3, 3, 0, 0,
	2, 2, 0, 0, 0, 2, 2, 0,
	1, 1, 0, 0, 0, 1, 1, 0,
	2, 2, 2, 2, 2, 2, 2, 0,
	3, 3, 0, 0, 0, 3, 3, 0,
	2, 2, 0, 0, 0, 2, 2, 0,
	1, 1, 0, 0, 0, 1, 1, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

const (
	glyphHex = "0x7c, 0x7c, 0x00, 0xc6, 0xc6, 0x00, 0x00, 0xfe, 0xc6, 0xc6, 0x00, 0xc6, 0xc6, 0x00, 0x00, 0x00\n"
	glyphC   = "{ 0x7c, 0x7c, 0x00, 0xc6, 0xc6, 0x00, 0x00, 0xfe, 0xc6, 0xc6, 0x00, 0xc6, 0xc6, 0x00, 0x00, 0x00 }\n"
)

func glyphText() string {
	s := make([]string, len(glyph))
	for i, v := range glyph {
		s[i] = string('0' + rune(v))
	}
	return strings.Join(s, ",")
}

func glyphPNG(t *testing.T) string {
	t.Helper()
	grays := []color.Gray{{Y: 0xff}, {Y: 0xaa}, {Y: 0x55}, {Y: 0x00}}
	m := image.NewGray(image.Rect(0, 0, 8, 8))
	for i, v := range glyph {
		m.SetGray(i%8, i/8, grays[v])
	}
	b := new(bytes.Buffer)
	require.NoError(t, png.Encode(b, m))
	return b.String()
}

func TestApp(t *testing.T) {
	tables := []struct {
		name   string
		args   []string
		env    map[string]string
		stdin  string
		output string
		err    bool
		cached bool
	}{
		{
			name:   "file",
			args:   []string{"--db", "{db}", "encode", "{file}"},
			output: glyphHex,
			cached: true,
		},
		{
			name:   "stdin",
			args:   []string{"--db", "{db}", "encode"},
			stdin:  glyphText(),
			output: glyphHex,
			cached: true,
		},
		{
			name:   "dash",
			args:   []string{"--db", "{db}", "encode", "-"},
			stdin:  glyphText(),
			output: glyphHex,
			cached: true,
		},
		{
			name:   "format flag",
			args:   []string{"--db", "{db}", "--format", "c", "encode", "{file}"},
			output: glyphC,
			cached: true,
		},
		{
			name:   "format env",
			args:   []string{"--db", "{db}", "encode", "{file}"},
			env:    map[string]string{"TWOBPP_FORMAT": "c"},
			output: glyphC,
			cached: true,
		},
		{
			name: "unknown format",
			args: []string{"--db", "{db}", "--format", "bogus", "encode", "{file}"},
			err:  true,
		},
		{
			name:   "no cache",
			args:   []string{"--db", "{db}", "--no-cache", "encode", "{file}"},
			output: glyphHex,
		},
		{
			name:   "db env",
			args:   []string{"encode", "{file}"},
			env:    map[string]string{"TWOBPP_DB": "{db}"},
			output: glyphHex,
			cached: true,
		},
		{
			name: "missing file",
			args: []string{"--db", "{db}", "encode", "{missing}"},
			err:  true,
		},
		{
			name:   "short input",
			args:   []string{"--db", "{db}", "encode"},
			stdin:  strings.Repeat("1,", 63),
			err:    true,
			cached: true,
		},
		{
			name:   "convert",
			args:   []string{"--db", "{db}", "convert"},
			stdin:  glyphPNG(t),
			output: glyphHex,
			cached: true,
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			dir := t.TempDir()
			db := filepath.Join(dir, "cache.db")
			file := filepath.Join(dir, "glyph.txt")
			require.NoError(t, os.WriteFile(file, []byte(glyphText()), 0o644))

			replacer := strings.NewReplacer("{db}", db, "{file}", file, "{missing}", filepath.Join(dir, "missing.txt"))

			for k, v := range table.env {
				t.Setenv(k, replacer.Replace(v))
			}

			args := []string{"twobpp"}
			for _, arg := range table.args {
				args = append(args, replacer.Replace(arg))
			}

			out := new(bytes.Buffer)
			app := newApp(dir)
			app.Reader = strings.NewReader(table.stdin)
			app.Writer = out
			app.ErrWriter = io.Discard
			app.ExitErrHandler = func(*cli.Context, error) {}

			err := app.Run(args)
			if table.err {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, table.output, out.String())
			}

			if table.cached {
				assert.FileExists(t, db)
			} else {
				assert.NoFileExists(t, db)
			}
			assert.NoFileExists(t, filepath.Join(dir, defaultDB))
		})
	}
}
