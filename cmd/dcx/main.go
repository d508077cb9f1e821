// The dcx CLI compresses and decompresses FromSoftware DCX/DCP containers.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	dcx "github.com/logicossoftware/go-dcx"
	"github.com/logicossoftware/go-dcx/internal/oodlestub"
)

var version = "dev"

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := newApp().Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func newApp() *cli.App {
	app := &cli.App{
		Name:    "dcx",
		Usage:   "DCX/DCP container tool",
		Version: version,
		Flags:   getGlobalFlags(),
		Before:  setupLogLevel,
	}
	app.Commands = []*cli.Command{
		{
			Name:      "decompress",
			Aliases:   []string{"d"},
			Usage:     "Unwrap containers, writing each payload next to its input or into --out-dir",
			ArgsUsage: "FILE...",
			Action: func(c *cli.Context) error {
				return runFiles(c, decompressFile)
			},
		},
		{
			Name:      "compress",
			Aliases:   []string{"c"},
			Usage:     "Wrap files in a container, appending .dcx to each name",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "kind", Usage: "Container kind, see `dcx kinds`"},
				&cli.StringFlag{Name: "game", Value: dcx.DarkSouls3.String(), Usage: "Use the default kind of this game when --kind is not set"},
			},
			Action: func(c *cli.Context) error {
				kind, err := resolveKind(c.String("kind"), c.String("game"))
				if err != nil {
					return err
				}
				return runFiles(c, func(c *cli.Context, path string) error {
					return compressFile(c, path, kind)
				})
			},
		},
		{
			Name:      "inspect",
			Aliases:   []string{"i"},
			Usage:     "Print the kind and sizes of containers",
			ArgsUsage: "FILE...",
			Action: func(c *cli.Context) error {
				return runFiles(c, inspectFile)
			},
		},
		{
			Name:      "validate",
			Usage:     "Check container structure and payload integrity",
			ArgsUsage: "FILE...",
			Action: func(c *cli.Context) error {
				return runFiles(c, validateFile)
			},
		},
		{
			Name:  "kinds",
			Usage: "List supported container kinds and per-game defaults",
			Action: func(c *cli.Context) error {
				return listKinds(c.App.Writer)
			},
		},
	}
	return app
}

func getGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "log-level", Value: "info", Usage: "Set log level (panic, fatal, error, warn, info, debug, trace)", EnvVars: []string{"LOG_LEVEL"}},
		&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Value: 4, Usage: "Number of files processed concurrently"},
		&cli.StringFlag{Name: "out-dir", Aliases: []string{"o"}, Usage: "Write outputs here instead of next to the inputs"},
		&cli.BoolFlag{Name: "kraken-stub", Usage: "Handle DCX_KRAK with the LZ4 stand-in codec (not compatible with game files)"},
	}
}

func setupLogLevel(c *cli.Context) error {
	logLevel, err := logrus.ParseLevel(c.String("log-level"))
	if err != nil {
		return errors.Wrap(err, "parse log level")
	}
	logrus.SetLevel(logLevel)
	return nil
}

func resolveKind(kind, game string) (dcx.Kind, error) {
	if kind != "" {
		return dcx.ParseKind(kind)
	}
	for _, g := range dcx.Games() {
		if strings.EqualFold(g.String(), game) {
			return g.DefaultKind(), nil
		}
	}
	return dcx.Unknown, errors.Errorf("unknown game %q", game)
}

// runFiles applies fn to every argument with at most --jobs running at once.
// The first failure cancels the remaining files.
func runFiles(c *cli.Context, fn func(c *cli.Context, path string) error) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return errors.New("no input files")
	}

	jobs := c.Int("jobs")
	if jobs < 1 {
		jobs = 1
	}
	eg, ctx := errgroup.WithContext(c.Context)
	eg.SetLimit(jobs)
	for _, path := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(c, path); err != nil {
				return errors.Wrap(err, path)
			}
			return nil
		})
	}
	return eg.Wait()
}

// options returns the dcx options shared by every subcommand.
func options(c *cli.Context) []dcx.Option {
	if c.Bool("kraken-stub") {
		return []dcx.Option{dcx.WithKrakenCodec(oodlestub.Codec{})}
	}
	return nil
}

func outputPath(c *cli.Context, path string) string {
	if dir := c.String("out-dir"); dir != "" {
		return filepath.Join(dir, filepath.Base(path))
	}
	return path
}

// decompressedName drops a trailing .dcx, or appends .out so the input is never overwritten.
func decompressedName(path string) string {
	if trimmed := strings.TrimSuffix(path, ".dcx"); trimmed != path && trimmed != "" {
		return trimmed
	}
	return path + ".out"
}

func writeOutput(c *cli.Context, path string, data []byte) error {
	if dir := c.String("out-dir"); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func decompressFile(c *cli.Context, path string) error {
	out, kind, err := dcx.DecompressFile(path, options(c)...)
	if err != nil {
		return err
	}
	dst := decompressedName(outputPath(c, path))
	if err := writeOutput(c, dst, out); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"kind": kind,
		"size": humanize.IBytes(uint64(len(out))),
	}).Infof("decompressed %s -> %s", path, dst)
	return nil
}

func compressFile(c *cli.Context, path string, kind dcx.Kind) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	dst := outputPath(c, path) + ".dcx"
	if dir := c.String("out-dir"); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
	}
	if err := dcx.CompressFile(dst, data, kind, options(c)...); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"kind": kind,
		"size": humanize.IBytes(uint64(len(data))),
	}).Infof("compressed %s -> %s", path, dst)
	return nil
}

var stdoutMu sync.Mutex

func inspectFile(c *cli.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	h, err := dcx.Inspect(data, options(c)...)
	if err != nil {
		return err
	}

	stdoutMu.Lock()
	defer stdoutMu.Unlock()
	w := c.App.Writer
	fmt.Fprintf(w, "%s: %s, %s -> %s", path, h.Kind,
		humanize.IBytes(uint64(h.UncompressedSize)), humanize.IBytes(uint64(len(data))))
	if len(h.Chunks) > 0 {
		fmt.Fprintf(w, ", %d chunks", len(h.Chunks))
	}
	fmt.Fprintln(w)
	for i, ch := range h.Chunks {
		logrus.Debugf("%s chunk %d: offset=%#x size=%d compressed=%t", path, i, ch.Offset, ch.Size, ch.Compressed)
	}
	return nil
}

func validateFile(c *cli.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	if err := dcx.Validate(data, options(c)...); err != nil {
		return err
	}
	logrus.Infof("%s: ok", path)
	return nil
}

func listKinds(w io.Writer) error {
	for _, k := range dcx.Kinds() {
		fmt.Fprintln(w, k)
	}
	fmt.Fprintln(w)
	for _, g := range dcx.Games() {
		fmt.Fprintf(w, "%-16s %s\n", g, g.DefaultKind())
	}
	return nil
}
