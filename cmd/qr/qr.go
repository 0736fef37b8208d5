package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"fortio.org/safecast"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	"github.com/unixdj/qrgen"
	"github.com/unixdj/qrgen/coding"
	"github.com/unixdj/qrgen/internal/config"
)

// options resolved from the config file and flags
type options struct {
	fn   string         // output file, "" for standard output
	typ  string         // output type
	msg  string         // message
	ver  coding.Version // QR version
	lev  qr.Level       // QR error correction level
	cs   qr.Charset     // payload charset
	save string         // file to save settings to, "" for none
	cfg  *config.Config // merged settings
}

var g options

// flagValues holds the command line as parsed.  Pointers are nil for
// flags not given.
type flagValues struct {
	msg     *string
	output  *string
	version *uint64
	level   string
	typ     string
	latin1  bool
	sjis    bool
	debug   bool
	args    []string
}

var (
	errCharsets  = errors.New("-1 and -k are incompatible")
	errNoMessage = errors.New("no message given")
)

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR code scaffold generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
Draws the finder patterns of a QR code of the given version.  The
message is taken from -m, followed by any remaining arguments; if
there is none, it is read from standard input and the final newline
is stripped.  The message is converted to the payload charset but is
not drawn.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	w.Write(b.Bytes())
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 0.1.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2025 Vadim Vygonets`)
	os.Exit(0)
}

var encoders = map[string]func(*qr.Code, io.Writer) error{
	"bmp":   (*qr.Code).EncodeBMP,
	"png":   (*qr.Code).EncodePNG,
	"pbm":   (*qr.Code).EncodePBM,
	"utf8":  (*qr.Code).EncodeUTF8,
	"ascii": (*qr.Code).EncodeASCII,
	"eps":   eps,
}

func parseFlags() error {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	cfn := getopt.String('c', "", "config file (YAML)", "file")
	sfn := getopt.String('s', "", "also save the resulting settings "+
		"to file (YAML)", "file")
	msg := getopt.String('m', "", "message", "text")
	fn := getopt.String('o', "", `output file, or "-" for `+
		`standard output [./output-qrcode.bmp]`, "file")
	ver := getopt.Unsigned('v', 1,
		&getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"QR code version", "ver")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "",
		"error correction level, lowest to highest [m]", "l|m|q|h")
	latin1 := getopt.Bool('1', "convert the message to Latin-1")
	sjis := getopt.Bool('k', "convert the message to Shift JIS")
	typ := getopt.Enum('t', config.Types, "", `output type, one of: `+
		strings.Join(config.Types, ", ")+
		`; if not given, guessed from the -o file name, then taken `+
		`from the config file, then guessed from the configured `+
		`output; for standard output, utf8 if it is a TTY, `+
		`otherwise bmp`,
		"type")
	debug := getopt.Bool('d', "log debugging information")

	getopt.Parse()
	f := flagValues{
		level:  *lev,
		typ:    *typ,
		latin1: *latin1,
		sjis:   *sjis,
		debug:  *debug,
		args:   getopt.Args(),
	}
	if getopt.IsSet('m') {
		f.msg = msg
	}
	if getopt.IsSet('o') {
		f.output = fn
	}
	if getopt.IsSet('v') {
		f.version = ver
	}

	cfg := config.Defaults()
	if *cfn != "" {
		var err error
		if cfg, err = config.Load(*cfn); err != nil {
			return err
		}
	}
	err := resolve(&g, cfg, f, os.Stdin, isatty.IsTerminal(os.Stdout.Fd()))
	if errors.Is(err, errCharsets) {
		fmt.Fprintln(os.Stderr, err)
		usage()
	}
	g.save = *sfn
	return err
}

// resolve applies the flags f on top of cfg, which holds the config
// file settings, and fills in o.  The message is read from stdin if
// f has none.  tty reports whether standard output is a terminal.
func resolve(o *options, cfg *config.Config, f flagValues, stdin io.Reader,
	tty bool) error {
	if f.latin1 && f.sjis {
		return errCharsets
	}
	if f.output != nil {
		cfg.Output = *f.output
	}
	if f.version != nil {
		v, err := safecast.Conv[int](*f.version)
		if err != nil {
			return fmt.Errorf("version: %w", err)
		}
		cfg.Version = v
	}
	if f.level != "" {
		cfg.Level = f.level
	}
	switch {
	case f.latin1:
		cfg.Charset = qr.Latin1.String()
	case f.sjis:
		cfg.Charset = qr.ShiftJIS.String()
	}
	if f.debug {
		cfg.LogLevel = "debug"
	}
	fn := cfg.Output
	if fn == "-" {
		fn = ""
	}
	// An explicit -o names the type by its extension, ahead of the
	// config file.
	typ := f.typ
	if typ == "" && f.output != nil {
		typ = config.GuessType(fn)
	}
	if f.typ != "" {
		cfg.Type = f.typ
	}
	if typ == "" {
		typ = cfg.Type
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	l, err := coding.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	cs, err := qr.ParseCharset(cfg.Charset)
	if err != nil {
		return err
	}
	o.fn, o.typ = fn, outputType(typ, fn, tty)
	o.ver, o.lev, o.cs, o.cfg = coding.Version(cfg.Version), qr.Level(l),
		cs, cfg

	switch {
	case f.msg != nil:
		o.msg = strings.Join(append([]string{*f.msg}, f.args...), " ")
	case len(f.args) != 0:
		o.msg = strings.Join(f.args, " ")
	default:
		var b strings.Builder
		if _, err := io.Copy(&b, stdin); err != nil {
			return err
		}
		o.msg, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if o.msg == "" {
		return errNoMessage
	}
	return nil
}

// outputType returns the output type: typ if set, otherwise guessed
// from the file name fn, or for standard output (fn == "") from
// whether it is a terminal.
func outputType(typ, fn string, tty bool) string {
	switch {
	case typ != "":
		return typ
	case fn == "" && tty:
		return "utf8"
	case fn == "":
		return "bmp"
	}
	if t := config.GuessType(fn); t != "" {
		return t
	}
	return "bmp"
}

func setupLogging() error {
	l, err := g.cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: l})))
	return nil
}

// saveSettings writes the merged settings to the -s file, if any.
func saveSettings() error {
	if g.save == "" {
		return nil
	}
	if err := config.Save(g.save, g.cfg); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	slog.Info("settings saved", "file", g.save)
	return nil
}

func main() {
	log.SetFlags(0)
	if err := parseFlags(); err != nil {
		log.Fatalln(err)
	}
	if err := setupLogging(); err != nil {
		log.Fatalln(err)
	}
	if err := saveSettings(); err != nil {
		log.Fatalln(err)
	}
	slog.Debug("options", "args", os.Args[1:], "version", g.ver,
		"level", g.lev, "charset", g.cs, "type", g.typ,
		"output", g.fn, "message", g.msg)

	c, err := qr.EncodeText(g.msg, g.cs, g.ver, g.lev)
	if err != nil {
		log.Fatalln(err)
	}
	if err := write(c); err != nil {
		log.Fatalln(err)
	}
	w, h := c.Dimensions()
	slog.Info("code written", "version", c.Version(), "width", w,
		"height", h, "payload", len(c.Payload), "type", g.typ,
		"output", g.fn)
}

func write(c *qr.Code) error {
	var w = os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			return err
		}
	}
	err := encoders[g.typ](c, w)
	if g.fn != "" {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		name := g.fn
		if name == "" {
			name = "standard output"
		}
		return fmt.Errorf("failed to save %s image to %s: %w",
			g.typ, name, err)
	}
	return nil
}

// EPS points per module and quiet zone modules.
const (
	epsScale  = 8
	epsBorder = 4
)

func eps(c *qr.Code, w io.Writer) error {
	const midx, midy = 306, 396
	img, err := c.Image()
	if err != nil {
		return err
	}
	siz := img.Rect.Dx()
	scale := epsScale
	bord := epsBorder
	xorig := (midx*2 - (siz+2*bord)*scale) / 2
	yorig := (midy*2 - (siz+2*bord)*scale) / 2
	black := func(x, y int) bool { return img.GrayAt(x, y).Y == 0 }
	var b bytes.Buffer
	fmt.Fprintf(&b, `%%!PS-Adobe-2.0 EPSF-2.0
%%%%Creator: qrgen https://github.com/unixdj/qrgen
%%%%Title: QR Code Version %s
%%%%BoundingBox: %d %d %d %d
%%%%EndComments
%%%%EndProlog
<< >> begin
gsave
%g %g translate
%d dup neg scale
/row 0 def
/p { 0 rmoveto 0 rlineto } def
/r { 0 row 1 add dup /row exch def moveto } def
`,
		c.Version(), xorig-1, yorig-1, midx*2-xorig, midy*2-yorig,
		midx-float64(siz*scale)/2, midy+float64((siz-1)*scale)/2-1,
		scale)
	fmt.Fprintln(&b, "newpath 0 0 moveto")
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; {
			s := x
			for x < siz && !black(x, y) {
				x++
			}
			if x == siz {
				break
			}
			bx := x
			for x < siz && black(x, y) {
				x++
			}
			fmt.Fprintf(&b, "%d %d p ", x-bx, bx-s)
		}
		fmt.Fprintln(&b, "r")
	}
	b.WriteString("stroke grestore\nend\n%%Trailer\n")
	_, err = b.WriteTo(w)
	return err
}
