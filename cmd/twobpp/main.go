package main

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/twobpp"
	"github.com/urfave/cli/v2"
)

const defaultDB = "twobpp.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

type encodeFunc func(*twobpp.Converter, io.Reader) ([]byte, error)

func run(c *cli.Context, fn encodeFunc) error {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	f, ok := formats[c.String("format")]
	if !ok {
		return cli.Exit(errors.New("unknown output format"), 1)
	}

	r := c.App.Reader
	if c.NArg() > 0 && c.Args().First() != "-" {
		file, err := os.Open(c.Args().First())
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer file.Close()
		r = file
	}

	var db *twobpp.TileDB
	if !c.Bool("no-cache") {
		var err error
		if db, err = twobpp.NewTileDB(c.String("db")); err != nil {
			return cli.Exit(err, 1)
		}
		defer db.Close()
	}

	b, err := fn(twobpp.New(db, logger), r)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := f(c.App.Writer, b); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func newApp(cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "twobpp"
	app.Usage = "2 bits per pixel tile encoder"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TWOBPP_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to tile cache",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "don't use the tile cache",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			EnvVars: []string{"TWOBPP_FORMAT"},
			Value:   "hex",
			Usage:   "output format; hex, c or raw",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Encode a list of 64 pixel values",
			Description: "Values between 0 and 3 separated by commas or whitespace, one group of eight after another. Reads standard input if FILE is omitted or -",
			ArgsUsage:   "[FILE]",
			Action: func(c *cli.Context) error {
				return run(c, (*twobpp.Converter).EncodeText)
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert an 8x8 GIF, JPEG or PNG image",
			Description: "Images with more than four colors are quantized, lightest color becomes index 0. Reads standard input if FILE is omitted or -",
			ArgsUsage:   "[FILE]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "fit",
					Usage: "scale the image to 8x8 first",
				},
			},
			Action: func(c *cli.Context) error {
				fit := c.Bool("fit")
				return run(c, func(conv *twobpp.Converter, r io.Reader) ([]byte, error) {
					return conv.EncodeImage(r, fit)
				})
			},
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cwd).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
