// Package cli implements the non-interactive subcommands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/riordanpawley/blindtimer/internal/config"
	"github.com/riordanpawley/blindtimer/internal/domain"
	"github.com/riordanpawley/blindtimer/internal/services/generator"
)

// Generator produces blind structures
type Generator interface {
	Generate(ctx context.Context, req generator.Request) ([]domain.Level, error)
}

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config    *config.Config
	Generator Generator
	Logger    *slog.Logger
	Out       io.Writer
}

// NewDependencies creates a Dependencies instance writing to stdout
func NewDependencies(cfg *config.Config, gen Generator, logger *slog.Logger) *Dependencies {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dependencies{
		Config:    cfg,
		Generator: gen,
		Logger:    logger,
		Out:       os.Stdout,
	}
}

// LoadTable returns the configured structure, or the default one when no
// structure file is set
func LoadTable(cfg *config.Config) (domain.Table, error) {
	if cfg.Structure.File == "" {
		return domain.DefaultTable(), nil
	}
	table, err := config.LoadStructure(cfg.Structure.File)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// LevelsCommand prints the structure as a table
func LevelsCommand(deps *Dependencies, args []string) error {
	fs := flag.NewFlagSet("levels", flag.ContinueOnError)
	fs.SetOutput(deps.Out)
	file := fs.String("file", deps.Config.Structure.File, "YAML structure file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := *deps.Config
	cfg.Structure.File = *file
	table, err := LoadTable(&cfg)
	if err != nil {
		return err
	}

	return PrintLevels(deps.Out, table)
}

// PrintLevels writes table as aligned columns
func PrintLevels(out io.Writer, table domain.Table) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tBLINDS\tANTE\tMINUTES\tSTARTS AT")
	fmt.Fprintln(w, "-----\t------\t----\t-------\t---------")

	start := 0
	for i, level := range table {
		ante := "-"
		if level.Ante > 0 && !level.IsBreak {
			ante = fmt.Sprintf("%d", level.Ante)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", i+1, level.Blinds(), ante, level.DurationMinutes, domain.FormatClock(start))
		start += level.DurationSeconds()
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%d levels, %s total\n", table.Len(), domain.FormatTotal(table.TotalDuration()))
	return err
}

// GenerateOptions are the parsed arguments of the generate command
type GenerateOptions struct {
	Request generator.Request
	Output  string
}

// ParseGenerateArgs parses generate flags with defaults from the config
func ParseGenerateArgs(cfg *config.Config, args []string, out io.Writer) (GenerateOptions, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(out)

	var opts GenerateOptions
	fs.IntVar(&opts.Request.Players, "players", cfg.Generator.Players, "number of players")
	fs.Float64Var(&opts.Request.DurationHours, "hours", cfg.Generator.DurationHours, "target tournament length in hours")
	fs.IntVar(&opts.Request.StartingChips, "chips", cfg.Generator.StartingChips, "starting stack")
	fs.StringVar(&opts.Output, "o", "", "write the structure to this YAML file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return GenerateOptions{}, err
	}
	if err := opts.Request.Validate(); err != nil {
		return GenerateOptions{}, err
	}
	return opts, nil
}

// GenerateCommand asks the generator for a structure and prints it as YAML
func GenerateCommand(ctx context.Context, deps *Dependencies, args []string) error {
	opts, err := ParseGenerateArgs(deps.Config, args, deps.Out)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, deps.Config.GeneratorTimeout())
	defer cancel()

	levels, err := deps.Generator.Generate(ctx, opts.Request)
	if err != nil {
		if errors.Is(err, domain.ErrNoAPIKey) {
			return fmt.Errorf("%w: set %s in the environment or a .env file", err, config.EnvAPIKey)
		}
		return err
	}
	if len(levels) == 0 {
		return domain.ErrEmptyStructure
	}

	table := domain.Table(levels)
	deps.Logger.Info("structure generated", "levels", table.Len())

	if opts.Output != "" {
		if err := config.SaveStructure(opts.Output, table); err != nil {
			return err
		}
		_, err := fmt.Fprintf(deps.Out, "✓ Wrote %d levels to %s\n", table.Len(), opts.Output)
		return err
	}

	data, err := config.MarshalStructure(table)
	if err != nil {
		return err
	}
	_, err = deps.Out.Write(data)
	return err
}

// PrintUsage prints CLI usage information
func PrintUsage(out io.Writer) {
	usage := `Usage: blindtimer [command] [arguments]

Commands:
  (no command)         Start the tournament clock
  run                  Start the tournament clock
  levels [-file F]     Print the blind structure
  generate [flags]     Generate a structure and print it as YAML
      -players N       number of players (default from config)
      -hours H         tournament length in hours
      -chips C         starting stack
      -o FILE          write to FILE instead of stdout
  help                 Show this help message

Examples:
  blindtimer                              # Start the clock
  blindtimer levels                       # Show the current structure
  blindtimer generate -players 9 -hours 3 -o tonight.yaml
`
	fmt.Fprint(out, usage)
}
