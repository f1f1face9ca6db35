// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command lazyrun runs the combinator scenarios described in a YAML file
// and prints what every scenario emits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-softwarelab/common/pkg/slogx"
)

func main() {
	verbose := flag.Bool("v", false, "Trace every session at debug level")
	timeout := flag.Duration("t", 30*time.Second, "Timeout for all scenarios (0 for no timeout)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error, none")
	logFormat := flag.String("log-format", "text", "Log format: text, json, text-no-time")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <scenarios.yaml>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s cmd/lazyrun/testdata/demo.yaml\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -v -log-level debug cmd/lazyrun/testdata/demo.yaml\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	level, err := slogx.ParseLogLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	format, err := slogx.ParseLogFormat(*logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := slogx.Child(slogx.NewLogger(
		slogx.WithLevel(level),
		slogx.WithFormat(format),
		slogx.WithWriter(os.Stderr),
	), "lazyrun")

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logger.Error("read scenarios", slogx.Error(err))
		os.Exit(1)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		logger.Error("load scenarios", slogx.Error(err))
		os.Exit(1)
	}
	logger.Info("loaded scenarios", slogx.String("name", cfg.Name), slogx.Number("count", len(cfg.Scenarios)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	failed := 0
	for _, sc := range cfg.Scenarios {
		start := time.Now()
		out, err := Run(ctx, sc, logger, *verbose)
		fmt.Printf("%s (%s): %s\n", sc.Name, sc.Kind, strings.Join(out, " "))
		if err != nil {
			failed++
			logger.Warn("scenario failed", slogx.String("scenario", sc.Name), slogx.Error(err))
			continue
		}
		logger.Info("scenario done",
			slogx.String("scenario", sc.Name),
			slogx.Number("elements", len(out)),
			slogx.String("elapsed", time.Since(start).String()))
	}
	if failed > 0 {
		os.Exit(1)
	}
}
