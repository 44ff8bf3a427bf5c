package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"potd/internal/generator"
)

// Version is reported by --version. It is overridden at build time with
// -ldflags "-X potd/internal/cli.Version=...".
var Version = "dev"

///////////////////////////////////////////////////////////////////////////////
// CLI configuration
///////////////////////////////////////////////////////////////////////////////

// CLIConfig holds the command-line options for the potd tool. Kong uses the
// struct tags to know which flags exist and how to parse them.
//
// --date and --range share an xor group, so kong rejects them together before
// any resolution happens. --des is deliberately outside the group: it wins
// over both.
type CLIConfig struct {
	Seed       string    `short:"s" help:"String of 4-8 characters, used in password generation to mutate output." env:"POTD_SEED"`
	Date       string    `short:"d" help:"Generate a password for the given date (YYYY-MM-DD, today, yesterday or tomorrow)." xor:"when"`
	DES        bool      `short:"D" name:"des" help:"Output DES representation of seed; --date and --range are ignored."`
	Format     string    `short:"f" help:"Password output format: ${enum}." enum:"text,json,yaml,ldif" default:"text" env:"POTD_FORMAT"`
	DateFormat string    `short:"F" name:"date-format" help:"strftime pattern used to display dates, e.g. %m/%d/%Y. Defaults to YYYY-MM-DD." env:"POTD_DATE_FORMAT"`
	Output     string    `short:"o" help:"Password or list will be written to given filename, replacing its content."`
	Range      DateRange `short:"r" placeholder:"START END" help:"Generate a list of passwords from START to END inclusive." xor:"when"`
	Verbose    bool      `short:"v" help:"Print output to console even when writing to file."`

	SuffixDN string           `name:"suffix-dn" help:"DN suffix for LDIF entries, e.g. 'ou=potd,o=arris'." default:"ou=potd,o=arris" env:"POTD_SUFFIX_DN"`
	Debug    bool             `help:"Log diagnostics to stderr." env:"POTD_DEBUG"`
	Config   kong.ConfigFlag  `help:"Path to a TOML config file."`
	Version  kong.VersionFlag `short:"V" help:"Print version and exit."`
}

// NewCLIConfig is an initializer function for CLIConfig.
// It sets the same defaults we expect in the rest of the program so
// behavior stays consistent.
func NewCLIConfig() *CLIConfig {
	return &CLIConfig{
		Format:   "text",
		SuffixDN: "ou=potd,o=arris",
	}
}

// Input converts the parsed flags into the generator's raw input.
func (c *CLIConfig) Input() generator.Input {
	return generator.Input{
		Seed:       c.Seed,
		Date:       c.Date,
		Range:      c.Range,
		DES:        c.DES,
		Format:     c.Format,
		DateFormat: c.DateFormat,
		Output:     c.Output,
		Verbose:    c.Verbose,
		SuffixDN:   c.SuffixDN,
	}
}

// DateRange holds the two values of --range START END. Kong hands us the
// scanner so both values can be taken after a single flag.
type DateRange []string

// Decode implements kong.MapperValue.
func (r *DateRange) Decode(ctx *kong.DecodeContext) error {
	var start, end string
	if err := ctx.Scan.PopValueInto("START", &start); err != nil {
		return err
	}
	if err := ctx.Scan.PopValueInto("END", &end); err != nil {
		return err
	}
	*r = DateRange{start, end}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// Process environment
///////////////////////////////////////////////////////////////////////////////

// environment is everything a run takes from the outside world. Run uses the
// real process; tests substitute buffers, a fixed clock and a fake source.
type environment struct {
	stdout      io.Writer
	stderr      io.Writer
	now         func() time.Time
	source      generator.Source
	exit        func(int)
	configPaths []string
}

// newEnvironment is an initializer function for environment. It wires the
// real clock, the ARRIS algorithm and the default config file location.
func newEnvironment(stdout, stderr io.Writer) *environment {
	return &environment{
		stdout:      stdout,
		stderr:      stderr,
		now:         time.Now,
		source:      generator.NewPOTDSource(),
		exit:        os.Exit,
		configPaths: []string{DefaultConfigPath()},
	}
}

///////////////////////////////////////////////////////////////////////////////
// Top-level CLI runner
///////////////////////////////////////////////////////////////////////////////

// Run is the main entry point for the CLI layer. It:
//
//  1. Creates a CLIConfig and asks kong to fill it from args, the
//     environment and the config file.
//  2. Resolves the raw values into a generator.RunConfig.
//  3. Passes it to generator.Run.
//
// Errors are returned, never printed; main owns the exit policy.
func Run(args []string, stdout, stderr io.Writer) error {
	return run(args, newEnvironment(stdout, stderr))
}

func run(args []string, env *environment) error {
	cfg := NewCLIConfig()

	// Help and --version call exit; when exit returns (as in tests) the run
	// stops cleanly.
	exited := false
	parser, err := kong.New(cfg,
		kong.Name("potd"),
		kong.Description("ARRIS/Commscope password-of-the-day generator."),
		kong.Vars{"version": Version},
		kong.Writers(env.stdout, env.stderr),
		kong.Exit(func(code int) {
			exited = true
			env.exit(code)
		}),
		kong.Configuration(TOML, env.configPaths...),
	)
	if err != nil {
		return fmt.Errorf("failed to build command line parser: %w", err)
	}

	if _, err := parser.Parse(args); err != nil {
		if exited {
			return nil
		}
		return err
	}
	if exited {
		return nil
	}

	logger := newLogger(env.stderr, cfg.Debug)

	runCfg, err := generator.Resolve(cfg.Input(), env.now())
	if err != nil {
		return err
	}
	logger.Debug("Request resolved.", "seed_length", len(runCfg.Seed), "format", runCfg.Format, "date_format", runCfg.DateFormat)

	deps := generator.NewDeps(env.stdout, logger)
	deps.Source = env.source

	return generator.Run(runCfg, deps)
}
