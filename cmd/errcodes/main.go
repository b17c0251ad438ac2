package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/mutker/errcodes/internal/config"
	"codeberg.org/mutker/errcodes/internal/errors"
	"codeberg.org/mutker/errcodes/internal/logger"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

const (
	exitOK     = 0
	exitOutput = 1
	exitUsage  = 2
)

type app struct {
	cfg    *config.Config
	reg    *errors.Registry
	log    logger.Logger
	stdout io.Writer
	stderr io.Writer
}

type renderedError struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger.Init(stderr, cfg.Debug, cfg.Verbose)
	if level, err := logger.ParseLevel(cfg.LogLevel.String()); err == nil {
		logger.SetLogLevel(level)
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	reg := errors.NewCatalogRegistry()
	reg.SetLogger(logger.Base())
	if err := reg.RegisterAll(cfg.TemplateMap()); err != nil {
		logger.Error().Err(err).Msg("failed to register configured templates")
		return exitUsage
	}
	logger.Debug().Int("templates", len(cfg.Templates)).Msg("Configured templates registered")

	a := &app{
		cfg:    cfg,
		reg:    reg,
		log:    logger.Global(),
		stdout: stdout,
		stderr: stderr,
	}

	return a.dispatch(cfg.Args)
}

func (a *app) dispatch(args []string) int {
	if len(args) == 0 {
		return a.fail(errors.NewError(errors.ErrMissingArgs, "command"), exitUsage)
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "render":
		return a.render(rest)
	case "message":
		return a.message(rest)
	case "list":
		return a.list()
	default:
		return a.fail(errors.NewError(errors.ErrUnknownCommand, cmd), exitUsage)
	}
}

func (a *app) render(args []string) int {
	fs := pflag.NewFlagSet("render", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	typeName := fs.String("type", errors.BaseError.String(), "Base type (Error, TypeError, RangeError)")
	if err := fs.Parse(args); err != nil {
		return a.fail(errors.Wrap(errors.ErrInvalidConfig, err, "render flags", strings.Join(args, " ")), exitUsage)
	}

	base, ok := errors.ParseBaseType(*typeName)
	if !ok {
		return a.fail(errors.NewTypeError(errors.ErrInvalidArgType, "type", []string{"Error", "TypeError", "RangeError"}), exitUsage)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return a.fail(errors.NewTypeError(errors.ErrMissingArgs, "code"), exitUsage)
	}

	err, buildErr := a.reg.New(base, rest[0], parseArgs(rest[1:])...)
	if buildErr != nil {
		return a.fail(buildErr, exitUsage)
	}

	if a.cfg.Output == config.OutputJSON {
		return a.writeJSON(a.stdout, renderedError{
			Code:    string(err.Code()),
			Name:    err.Name(),
			Message: err.Message(),
		})
	}

	name := color.New(color.FgRed, color.Bold).Sprint(err.Name())
	fmt.Fprintf(a.stdout, "%s: %s\n", name, err.Message())

	return exitOK
}

func (a *app) message(args []string) int {
	if len(args) == 0 {
		return a.fail(errors.NewTypeError(errors.ErrMissingArgs, "code"), exitUsage)
	}

	msg, err := a.reg.Message(args[0], parseArgs(args[1:])...)
	if err != nil {
		return a.fail(err, exitUsage)
	}

	if a.cfg.Output == config.OutputJSON {
		return a.writeJSON(a.stdout, map[string]string{"message": msg})
	}
	fmt.Fprintln(a.stdout, msg)

	return exitOK
}

func (a *app) list() int {
	codes := a.reg.Codes()

	if a.cfg.Output == config.OutputJSON {
		return a.writeJSON(a.stdout, codes)
	}
	for _, code := range codes {
		fmt.Fprintln(a.stdout, code)
	}

	return exitOK
}

func (a *app) writeJSON(w io.Writer, v any) int {
	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		a.log.Error().Err(err).Msg("failed to encode output")
		return exitOutput
	}

	return exitOK
}

// fail logs err and prints it to stderr, returning code
func (a *app) fail(err error, code int) int {
	var coded errors.Error
	if errors.As(err, &coded) {
		a.log.ErrorWithCode(coded).Msg("command failed")
	} else {
		a.log.Error().Err(err).Msg("command failed")
	}

	if a.cfg.Output == config.OutputJSON {
		out := renderedError{Message: err.Error()}
		if c, ok := err.(interface {
			Code() errors.ErrorCode
			Name() string
			Message() string
		}); ok {
			out = renderedError{Code: string(c.Code()), Name: c.Name(), Message: c.Message()}
		}
		a.writeJSON(a.stderr, out)
		return code
	}

	fmt.Fprintln(a.stderr, err)

	return code
}

// parseArgs turns command line words into template arguments. "undefined"
// and "null" stand for missing and nil values, "[]" for an empty list, and
// comma separated words for a list.
func parseArgs(words []string) []any {
	args := make([]any, len(words))
	for i, word := range words {
		switch {
		case word == "undefined":
			args[i] = errors.Undefined
		case word == "null":
			args[i] = nil
		case word == "[]":
			args[i] = []string{}
		case strings.Contains(word, ","):
			args[i] = strings.Split(word, ",")
		default:
			args[i] = word
		}
	}

	return args
}
