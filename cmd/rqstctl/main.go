package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/rqstctl/internal/client"
	"github.com/danmuck/rqstctl/internal/device"
	"github.com/danmuck/rqstctl/internal/logging"
	"github.com/danmuck/rqstctl/internal/observability"
	"github.com/danmuck/rqstctl/internal/protocol"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type app struct {
	stdout io.Writer
	stderr io.Writer
	open   device.OpenFunc
}

func main() {
	a := app{stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(os.Args[1:]))
}

func (a app) run(args []string) int {
	fs := flag.NewFlagSet("rqstctl", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	configPath := fs.String("config", "", "config path (defaults to /etc/rqstctl/config.toml when present)")
	devicePath := fs.String("device", "", "device node path (overrides device.path)")
	dryRun := fs.Bool("dry-run", false, "print the encoded request without opening the device")
	decode := fs.Bool("decode", false, "print a field view of responses with a known layout")
	logLevel := fs.String("log-level", "", "log level (overrides logging.level)")
	textfile := fs.String("metrics-textfile", "", "write exchange metrics to this .prom file")
	fs.Usage = func() {
		fmt.Fprintln(a.stderr, "usage: rqstctl [flags] <command> [args]")
		fs.PrintDefaults()
		fmt.Fprintln(a.stderr, "run 'rqstctl list' for available commands")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := loadRuntimeConfig(*configPath)
	if err != nil {
		fmt.Fprintf(a.stderr, "rqstctl: %v\n", err)
		return exitUsage
	}
	if *devicePath != "" {
		cfg.Device.Path = *devicePath
	}
	if *logLevel != "" {
		if _, ok := logging.ParseLevel(*logLevel); !ok {
			fmt.Fprintf(a.stderr, "rqstctl: invalid log level %q\n", *logLevel)
			return exitUsage
		}
		cfg.Logging.Level = *logLevel
	}
	if *textfile != "" {
		cfg.Metrics.Textfile = *textfile
	}
	logging.Configure(logging.ProfileRuntime, func(lc *logging.Config) {
		cfg.ApplyLogging(lc)
		lc.Console = a.stderr
	})

	registry := protocol.DefaultRegistry()
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return exitUsage
	}
	if rest[0] == "list" {
		a.list(registry)
		return exitOK
	}

	spec, ok := registry.Resolve(rest[0])
	if !ok {
		fmt.Fprintf(a.stderr, "rqstctl: unknown command %q\n", rest[0])
		return exitUsage
	}
	cmd, err := spec.Build(rest[1:])
	if err != nil {
		fmt.Fprintf(a.stderr, "rqstctl: %v\nusage: rqstctl %s\n", err, spec.Usage)
		return exitUsage
	}

	if *dryRun {
		req, err := cmd.Encode()
		if err != nil {
			fmt.Fprintf(a.stderr, "rqstctl: %v\n", err)
			return exitFailure
		}
		fmt.Fprintln(a.stdout, protocol.FormatHex(req))
		return exitOK
	}

	metrics := observability.NewMetrics()
	c := client.New(cfg.Device.Path,
		client.WithOpener(a.open),
		client.WithLogger(log.Logger),
		client.WithMetrics(metrics),
	)
	code := a.exchange(c, cmd, *decode)

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warn().Err(err).Str("path", cfg.Metrics.Textfile).Msg("metrics textfile write failed")
		}
	}
	return code
}

func (a app) exchange(c *client.Client, cmd protocol.Command, decode bool) int {
	resp, err := c.Send(cmd)
	if err != nil {
		fmt.Fprintf(a.stderr, "rqstctl: %v\n", err)
		return exitFailure
	}
	fmt.Fprintln(a.stdout, protocol.FormatHex(resp))
	if !decode {
		return exitOK
	}
	known, err := decodeResponse(a.stdout, cmd, resp)
	if err != nil {
		fmt.Fprintf(a.stderr, "rqstctl: decode: %v\n", err)
		return exitFailure
	}
	if !known {
		fmt.Fprintf(a.stderr, "rqstctl: no decoder for %s\n", cmd)
	}
	return exitOK
}

func (a app) list(registry *protocol.Registry) {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, spec := range registry.List() {
		fmt.Fprintf(tw, "%s\t%s\n", spec.Usage, spec.Description)
	}
	tw.Flush()
}
