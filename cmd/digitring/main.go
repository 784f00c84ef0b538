package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/dimoria/digitring"
)

const (
	ERROR_STATUS_CODE = 1
	COMMAND_NAME      = "digitring"

	HELP = "Usage:\n\t" + COMMAND_NAME + " <command> [arguments]\n\nThe commands are:\n" +
		"\tshow   - print a number in decimal, in the working base and in base 2\n" +
		"\tmod    - print the remainder of the first number divided by the second\n" +
		"\tsort   - sort the digits of a number\n" +
		"\trotate - rotate the digits of a number\n\n" +
		"Every command reads decimal numerals from files and accepts:\n" +
		"\t-base <n>   working base (default 16)\n" +
		"\t-o <file>   also save the decimal result to <file>\n"
)

func main() {
	statusCode := _main(os.Args, os.Stdout, os.Stderr)
	if statusCode != 0 {
		os.Exit(statusCode)
	}
}

type commonFlags struct {
	base   int
	output string
}

func (c *commonFlags) register(flags *flag.FlagSet) {
	flags.IntVar(&c.base, "base", digitring.DefaultBase, "working base")
	flags.StringVar(&c.output, "o", "", "file receiving the decimal result")
}

func _main(args []string, outW io.Writer, errW io.Writer) (statusCode int) {
	if len(args) < 2 {
		fmt.Fprint(errW, "missing command\n"+HELP)
		return ERROR_STATUS_CODE
	}

	subcommand, subcommandArgs := args[1], args[2:]
	logger := zerolog.New(errW).With().Timestamp().Str("cmd", subcommand).Logger()

	flags := flag.NewFlagSet(subcommand, flag.ContinueOnError)
	flags.SetOutput(errW)
	var common commonFlags
	common.register(flags)

	var run func(opts []digitring.Option) (*digitring.Ring, error)

	switch subcommand {
	case "help", "-h", "--help":
		fmt.Fprint(outW, HELP)
		return 0
	case "show":
		run = func(opts []digitring.Option) (*digitring.Ring, error) {
			r, err := loadArg(flags, 0, opts)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(outW, "decimal: %s\nbase %d: %s\nbase 2: %s\n",
				r.DecimalString(), r.Base(), r, r.Binary())
			return r, nil
		}
	case "mod":
		run = func(opts []digitring.Option) (*digitring.Ring, error) {
			a, err := loadArg(flags, 0, opts)
			if err != nil {
				return nil, err
			}
			b, err := loadArg(flags, 1, opts)
			if err != nil {
				return nil, err
			}
			r, err := a.Mod(b)
			if err != nil {
				return nil, err
			}
			fmt.Fprintln(outW, r.DecimalString())
			return r, nil
		}
	case "sort":
		var desc bool
		flags.BoolVar(&desc, "desc", false, "sort from largest to smallest digit")
		run = func(opts []digitring.Option) (*digitring.Ring, error) {
			r, err := loadArg(flags, 0, opts)
			if err != nil {
				return nil, err
			}
			if desc {
				r.SortDescending()
			} else {
				r.SortAscending()
			}
			fmt.Fprintln(outW, r)
			return r, nil
		}
	case "rotate":
		var right bool
		var steps int
		flags.BoolVar(&right, "right", false, "rotate towards the least significant digit")
		flags.IntVar(&steps, "n", 1, "number of positions")
		run = func(opts []digitring.Option) (*digitring.Ring, error) {
			r, err := loadArg(flags, 0, opts)
			if err != nil {
				return nil, err
			}
			for i := 0; i < steps; i++ {
				if right {
					r.RotateRight()
				} else {
					r.RotateLeft()
				}
			}
			fmt.Fprintln(outW, r)
			return r, nil
		}
	default:
		fmt.Fprintf(errW, "unknown command '%s'\n%s", subcommand, HELP)
		return ERROR_STATUS_CODE
	}

	if err := flags.Parse(subcommandArgs); err != nil {
		return ERROR_STATUS_CODE
	}

	result, err := run([]digitring.Option{digitring.UseBase(common.base)})
	if err != nil {
		logger.Error().Err(err).Msg("command failed")
		return ERROR_STATUS_CODE
	}

	if common.output != "" {
		if err := result.SaveFile(common.output); err != nil {
			logger.Error().Err(err).Str("path", common.output).Msg("failed to save result")
			return ERROR_STATUS_CODE
		}
		logger.Info().Str("path", common.output).Int("digits", result.Len()).Msg("result saved")
	}
	return 0
}

func loadArg(flags *flag.FlagSet, i int, opts []digitring.Option) (*digitring.Ring, error) {
	path := flags.Arg(i)
	if path == "" {
		return nil, fmt.Errorf("missing file argument #%d", i+1)
	}
	return digitring.LoadFile(path, opts...)
}
