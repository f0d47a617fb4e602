package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

type commandOptions struct {
	Host             string `short:"a" long:"host"                default:"127.0.0.1"      description:"Aggregator host"                              `
	Port             int    `short:"P" long:"port"                default:"8191"           description:"Aggregator UDP port"                          `
	CompressionLevel int    `short:"z" long:"compression-level"   default:"5"              description:"Gzip level, 0 disables compression"           `
	MetricPrefix     string `short:"p" long:"metric-prefix"       default:"loadtest."      description:"Metric name prefix"                           `
	MetricSuffix     string `          long:"metric-suffix"       default:".%d"            description:"Metric suffix with cardinality marker"        `
	Rate             uint   `short:"r" long:"rate"                default:"1000"           description:"Target observations per second"               `
	Workers          uint   `short:"w" long:"workers"             default:"1"              description:"Number of parallel workers to use"            `
	Count            uint64 `short:"c" long:"count"                                        description:"Number of observations to send"               `
	NameCardinality  uint   `          long:"name-cardinality"    default:"1"              description:"Cardinality of metric names"                  `
	LabelCardinality []uint `          long:"label-cardinality"                             description:"Cardinality of a label, may be repeated"      `
	ValueLimit       uint   `          long:"value-limit"         default:"100"            description:"Maximum value"                                `
	StringValues     bool   `          long:"string-values"                                description:"Send values as strings"                       `
}

func parseArgs(args []string) commandOptions {
	var opts commandOptions
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.LongDescription = "" + // because gofmt
		"When specifying cardinality, the label cardinality can be specified multiple times,\n" +
		"and each label will be named labelN=M.  The maximum total cardinality will be:\n\n" +
		"|name| * |label1| * |label2| * ... * |labelN|\n\n" +
		"Care should be taken to not cause a combinatorial explosion."

	positional, err := parser.ParseArgs(args)
	if err != nil {
		if !isHelp(err) {
			parser.WriteHelp(os.Stderr)
			_, _ = fmt.Fprintf(os.Stderr, "\n\nerror parsing command line: %v\n", err)
			os.Exit(1)
		}
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}

	if len(positional) != 0 {
		parser.WriteHelp(os.Stderr)
		_, _ = fmt.Fprintf(os.Stderr, "\n\nno positional arguments allowed\n")
		os.Exit(1)
	}

	if err := opts.validate(); err != nil {
		parser.WriteHelp(os.Stderr)
		_, _ = fmt.Fprintf(os.Stderr, "\n\n%v\n", err)
		os.Exit(1)
	}
	return opts
}

func (opts *commandOptions) validate() error {
	if opts.Count == 0 {
		return fmt.Errorf("count must be non-zero")
	}
	if opts.Workers == 0 || opts.Rate == 0 {
		return fmt.Errorf("workers and rate must be non-zero")
	}
	if opts.NameCardinality == 0 || opts.ValueLimit == 0 {
		return fmt.Errorf("name-cardinality and value-limit must be non-zero")
	}
	for _, c := range opts.LabelCardinality {
		if c == 0 {
			return fmt.Errorf("label-cardinality must be non-zero")
		}
	}
	return nil
}

// isHelp is a helper to test the error from ParseArgs() to
// determine if the help message was written. It is safe to
// call without first checking that error is nil.
func isHelp(err error) bool {
	flagError, ok := err.(*flags.Error)
	if !ok {
		return false
	}
	return flagError.Type == flags.ErrHelp
}
