// windowserve serves byte windows of the files under a directory over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.senan.xyz/flagconf"
	"golang.org/x/sync/errgroup"

	"go.senan.xyz/streamwindow"
	"go.senan.xyz/streamwindow/multierr"
	"go.senan.xyz/streamwindow/sandbox"
	"go.senan.xyz/streamwindow/server"
)

func main() {
	confListenAddr := flag.String("listen-addr", "0.0.0.0:4848", "listen address (optional)")
	confRoot := flag.String("root", "", "path to the directory to serve files from")
	confHTTPLog := flag.Bool("http-log", true, "http request logging (optional)")

	confShowVersion := flag.Bool("version", false, "show version")
	confConfigPath := flag.String("config-path", "", "path to config (optional)")

	flag.Parse()
	if err := flagconf.ParseEnv(); err != nil {
		log.Fatalf("error parsing env: %v\n", err)
	}
	if err := flagconf.ParseConfig(*confConfigPath); err != nil {
		log.Fatalf("error parsing config: %v\n", err)
	}

	if *confShowVersion {
		fmt.Printf("%s v%s\n", streamwindow.Name, streamwindow.Version)
		os.Exit(0)
	}

	var errs multierr.Err
	if *confRoot == "" {
		errs.Add(errors.New("please provide a root directory"))
	}
	if *confListenAddr == "" {
		errs.Add(errors.New("please provide a listen address"))
	}
	if errs.Len() > 0 {
		log.Fatalf("invalid flags:\n%v", errs)
	}

	var opts []server.Option
	if !*confHTTPLog {
		opts = append(opts, server.WithoutLog())
	}
	srv, err := server.New(*confRoot, opts...)
	if err != nil {
		log.Fatalf("error creating server: %v", err)
	}

	box, err := sandbox.New("stdio", "rpath", "inet", "dns")
	if err != nil {
		log.Fatalf("error creating sandbox: %v", err)
	}
	if err := box.ReadOnlyDir(srv.Root()); err != nil {
		log.Fatalf("error adding root to sandbox: %v", err)
	}
	if err := box.Enforce(); err != nil {
		log.Fatalf("error enforcing sandbox: %v", err)
	}

	log.Printf("starting %s v%s\n", streamwindow.Name, streamwindow.Version)
	log.Printf("provided config\n")
	flag.VisitAll(func(f *flag.Flag) {
		value := strings.ReplaceAll(f.Value.String(), "\n", "")
		log.Printf("    %-25s %s\n", f.Name, value)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errgrp, ctx := errgroup.WithContext(ctx)
	errgrp.Go(func() error {
		log.Printf("serving %q at %s", srv.Root(), *confListenAddr)
		return server.ListenAndServe(ctx, *confListenAddr, srv)
	})
	errgrp.Go(func() error {
		<-ctx.Done()
		log.Printf("shutting down: %v", context.Cause(ctx))
		return nil
	})

	if err := errgrp.Wait(); err != nil {
		log.Fatalf("error running server: %v", err)
	}
}
