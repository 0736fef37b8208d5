package main

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrgen"
	"github.com/unixdj/qrgen/coding"
	"github.com/unixdj/qrgen/internal/config"
)

func ptr[T any](v T) *T { return &v }

func TestResolve(t *testing.T) {
	withType := func(typ string) func(*config.Config) {
		return func(c *config.Config) { c.Type = typ }
	}
	tests := []struct {
		name  string
		cfg   func(*config.Config)
		f     flagValues
		stdin string
		tty   bool
		want  options
	}{
		{
			name: "defaults",
			f:    flagValues{args: []string{"hi"}},
			want: options{fn: "./output-qrcode.bmp", typ: "bmp",
				msg: "hi", ver: 1, lev: qr.M, cs: qr.UTF8},
		},
		{
			name: "flags override file",
			cfg: func(c *config.Config) {
				c.Version, c.Level, c.Output = 7, "q", "out.png"
				c.Charset = "latin-1"
			},
			f: flagValues{version: ptr[uint64](3), level: "H",
				output: ptr("x.pbm"), sjis: true,
				args: []string{"hi"}},
			want: options{fn: "x.pbm", typ: "pbm", msg: "hi",
				ver: 3, lev: qr.H, cs: qr.ShiftJIS},
		},
		{
			name: "file settings",
			cfg: func(c *config.Config) {
				c.Version, c.Level, c.Output = 7, "q", "out.png"
				c.Charset = "latin-1"
			},
			f: flagValues{args: []string{"hi"}},
			want: options{fn: "out.png", typ: "png", msg: "hi",
				ver: 7, lev: qr.Q, cs: qr.Latin1},
		},
		{
			name: "output extension beats file type",
			cfg:  withType("png"),
			f:    flagValues{output: ptr("o.pbm"), args: []string{"hi"}},
			want: options{fn: "o.pbm", typ: "pbm", msg: "hi",
				ver: 1, lev: qr.M, cs: qr.UTF8},
		},
		{
			name: "file type without output flag",
			cfg:  withType("png"),
			f:    flagValues{args: []string{"hi"}},
			want: options{fn: "./output-qrcode.bmp", typ: "png",
				msg: "hi", ver: 1, lev: qr.M, cs: qr.UTF8},
		},
		{
			name: "file type for unknown extension",
			cfg:  withType("png"),
			f:    flagValues{output: ptr("code"), args: []string{"hi"}},
			want: options{fn: "code", typ: "png", msg: "hi",
				ver: 1, lev: qr.M, cs: qr.UTF8},
		},
		{
			name: "type flag beats extension",
			f: flagValues{output: ptr("o.pbm"), typ: "ascii",
				args: []string{"hi"}},
			want: options{fn: "o.pbm", typ: "ascii", msg: "hi",
				ver: 1, lev: qr.M, cs: qr.UTF8},
		},
		{
			name: "stdout tty",
			f:    flagValues{output: ptr("-"), args: []string{"hi"}},
			tty:  true,
			want: options{typ: "utf8", msg: "hi",
				ver: 1, lev: qr.M, cs: qr.UTF8},
		},
		{
			name: "stdout pipe",
			f:    flagValues{output: ptr("-"), args: []string{"hi"}},
			want: options{typ: "bmp", msg: "hi",
				ver: 1, lev: qr.M, cs: qr.UTF8},
		},
		{
			name: "stdout file type",
			cfg:  withType("png"),
			f:    flagValues{output: ptr("-"), args: []string{"hi"}},
			tty:  true,
			want: options{typ: "png", msg: "hi",
				ver: 1, lev: qr.M, cs: qr.UTF8},
		},
		{
			name: "message and args",
			f: flagValues{msg: ptr("a"), latin1: true,
				args: []string{"b", "c"}},
			want: options{fn: "./output-qrcode.bmp", typ: "bmp",
				msg: "a b c", ver: 1, lev: qr.M, cs: qr.Latin1},
		},
		{
			name:  "stdin",
			stdin: "hello\r\n",
			want: options{fn: "./output-qrcode.bmp", typ: "bmp",
				msg: "hello", ver: 1, lev: qr.M, cs: qr.UTF8},
		},
		{
			name:  "stdin keeps inner newlines",
			stdin: "two\nlines\n\n",
			want: options{fn: "./output-qrcode.bmp", typ: "bmp",
				msg: "two\nlines\n", ver: 1, lev: qr.M, cs: qr.UTF8},
		},
		{
			name:  "args ignore stdin",
			f:     flagValues{args: []string{"x"}},
			stdin: "ignored",
			want: options{fn: "./output-qrcode.bmp", typ: "bmp",
				msg: "x", ver: 1, lev: qr.M, cs: qr.UTF8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			if tt.cfg != nil {
				tt.cfg(cfg)
			}
			var got options
			require.NoError(t, resolve(&got, cfg, tt.f,
				strings.NewReader(tt.stdin), tt.tty))
			assert.Same(t, cfg, got.cfg)
			got.cfg = nil
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveMergesConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Type = "png"
	var o options
	require.NoError(t, resolve(&o, cfg, flagValues{
		output: ptr("-"), version: ptr[uint64](40), level: "q",
		typ: "eps", sjis: true, debug: true, args: []string{"x"},
	}, strings.NewReader(""), false))
	assert.Equal(t, &config.Config{
		Version:  40,
		Level:    "q",
		Output:   "-",
		Type:     "eps",
		Charset:  "shift-jis",
		LogLevel: "debug",
	}, cfg)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		f     flagValues
		stdin string
		want  error
	}{
		{"charsets", flagValues{latin1: true, sjis: true,
			args: []string{"x"}}, "", errCharsets},
		{"empty stdin", flagValues{}, "", errNoMessage},
		{"lone newline", flagValues{}, "\n", errNoMessage},
		{"empty message", flagValues{msg: ptr("")}, "ignored",
			errNoMessage},
		{"version 0", flagValues{version: ptr[uint64](0),
			args: []string{"x"}}, "", coding.ErrVersion},
		{"version 41", flagValues{version: ptr[uint64](41),
			args: []string{"x"}}, "", coding.ErrVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o options
			err := resolve(&o, config.Defaults(), tt.f,
				strings.NewReader(tt.stdin), false)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	var o options
	err := resolve(&o, config.Defaults(), flagValues{
		version: ptr[uint64](math.MaxUint64), args: []string{"x"},
	}, strings.NewReader(""), false)
	assert.ErrorContains(t, err, "version: ")
}

func TestSaveSettings(t *testing.T) {
	saved := g
	t.Cleanup(func() { g = saved })

	g = options{}
	assert.NoError(t, saveSettings())

	cfg := config.Defaults()
	require.NoError(t, resolve(&g, cfg, flagValues{
		output: ptr("code.png"), version: ptr[uint64](5), latin1: true,
		args: []string{"x"},
	}, strings.NewReader(""), false))
	g.save = filepath.Join(t.TempDir(), "qr.yaml")
	require.NoError(t, saveSettings())
	got, err := config.Load(g.save)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, 5, got.Version)
	assert.Equal(t, "code.png", got.Output)
	assert.Equal(t, "latin-1", got.Charset)
}

func TestOutputType(t *testing.T) {
	tests := []struct {
		typ, fn string
		tty     bool
		want    string
	}{
		{"pbm", "x.png", false, "pbm"},
		{"", "x.png", true, "png"},
		{"", "./output-qrcode.bmp", false, "bmp"},
		{"", "code", false, "bmp"},
		{"", "", true, "utf8"},
		{"", "", false, "bmp"},
		{"ascii", "", true, "ascii"},
	}
	for _, tt := range tests {
		got := outputType(tt.typ, tt.fn, tt.tty)
		assert.Equal(t, tt.want, got, "%+v", tt)
	}
}

func TestEncodersCoverTypes(t *testing.T) {
	c, err := qr.Encode(1, qr.M)
	require.NoError(t, err)
	for _, typ := range config.Types {
		enc, ok := encoders[typ]
		require.True(t, ok, typ)
		var b bytes.Buffer
		require.NoError(t, enc(c, &b), typ)
		assert.NotZero(t, b.Len(), typ)
	}
}

func TestEPS(t *testing.T) {
	c, err := qr.Encode(1, qr.M)
	require.NoError(t, err)
	var b bytes.Buffer
	require.NoError(t, eps(c, &b))
	lines := strings.Split(b.String(), "\n")
	assert.Equal(t, "%!PS-Adobe-2.0 EPSF-2.0", lines[0])
	assert.Contains(t, b.String(), "%%Title: QR Code Version 1\n")
	// row 0: 7 dark, 1 light, 5 dark, 1 light, 7 dark
	assert.Contains(t, b.String(), "newpath 0 0 moveto\n7 0 p 5 1 p 7 1 p r\n")
	assert.Equal(t, 21, strings.Count(b.String(), " r\n")+
		strings.Count(b.String(), "\nr\n"))
	assert.True(t, strings.HasSuffix(b.String(), "%%Trailer\n"))
}
