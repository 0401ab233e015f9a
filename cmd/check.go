package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/velatype/vela/checkerr"
	"github.com/velatype/vela/infer"
	"github.com/velatype/vela/internal/log"
	"github.com/velatype/vela/parse"
	"github.com/velatype/vela/seed"
)

var logger = log.DefaultLogger.With("section", "cli")

var CheckCmd = &cobra.Command{
	Use:          "check <files...>",
	Short:        "Type-check one or more program files",
	RunE:         runCheck,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var (
	seedPath *string
	logLevel *int
	noColor  *bool
)

func init() {
	seedPath = CheckCmd.Flags().StringP("seed", "s", "", "path to a seed environment YAML document (defaults to the built-in seed)")
	logLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
	noColor = CheckCmd.Flags().Bool("no-color", false, "disable ANSI diagnostic colouring")
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))

	env, err := seed.Load(*seedPath)
	if err != nil {
		return errors.Wrap(err, "loading seed environment")
	}
	var names []string
	for name, _ := range env.All() {
		names = append(names, name)
	}
	logger.Debug("seed environment loaded", "path", *seedPath, "bindings", names)

	color := wantColor(*noColor)
	anyErrors := false

	for _, file := range args {
		data, err := os.ReadFile(file)
		if err != nil {
			return errors.Wrapf(err, "reading %s", file)
		}

		exprs, err := parse.Parse(string(data))
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), paint(color, colorRed, fmt.Sprintf("%s: parse error: %v", file, err)))
			anyErrors = true
			continue
		}

		var fileErrs checkerr.Errors
		ctx := infer.NewContext(env)
		for _, e := range exprs {
			_, _, ctx2, err := infer.InferExpr(ctx, e)
			if err != nil {
				if ce, ok := err.(checkerr.CheckError); ok {
					fileErrs.With(ce)
					continue
				}
				return errors.Wrapf(err, "checking %s", file)
			}
			ctx = ctx2
		}

		if fileErrs.HasError() {
			anyErrors = true
			for _, ce := range fileErrs.Errors() {
				msg := checkerr.FormatWithCodeAndSource(file, ce)
				fmt.Fprintln(cmd.OutOrStdout(), paint(color, colorRed, msg))
			}
		}
	}

	if anyErrors {
		return fmt.Errorf("type errors found")
	}
	return nil
}

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

func paint(enabled bool, code, s string) string {
	if !enabled || strings.TrimSpace(s) == "" {
		return s
	}
	return code + s + colorReset
}

// wantColor follows the NO_COLOR convention (https://no-color.org/) and
// falls back to TTY detection.
func wantColor(disabled bool) bool {
	if disabled {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
