// Command master matches the sound of a target recording to a reference.
//
// Usage:
//
//	master render --reference ref.wav --out mastered.wav [params] target.wav
//	master analyze [--json] file.wav
//	master graph --reference ref.wav [params] target.wav
//
// Parameters come from flags, optionally on top of a JSON preset:
//
//	master render -r ref.wav -o out.wav --preset warm.json --saturation 0.2 in.wav
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	LogLevel string           `help:"Log level (${enum})." default:"warn" enum:"trace,debug,info,warn,error"`
	Version  kong.VersionFlag `short:"v" help:"Show version information."`

	Render  RenderCmd  `cmd:"" help:"Master a target against a reference and write a WAV file."`
	Analyze AnalyzeCmd `cmd:"" help:"Print the features of a WAV file."`
	Graph   GraphCmd   `cmd:"" help:"Print the mastering graph as JSON."`
}

// env carries the shared dependencies of all commands.
type env struct {
	log *logrus.Logger
	out io.Writer
}

func newLogger(level string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	return l, nil
}

func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("master"),
		kong.Description("Reference-matched audio mastering"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	}, opts...)

	return kong.New(cli, opts...)
}

func run(args []string, stdout, stderr io.Writer, opts ...kong.Option) error {
	var cli CLI

	parser, err := newParser(&cli, append(opts, kong.Writers(stdout, stderr))...)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	log, err := newLogger(cli.LogLevel, stderr)
	if err != nil {
		return err
	}

	return ctx.Run(&env{log: log, out: stdout})
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}
