package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/sockshim/sockshim/internal/dialer"
	"github.com/sockshim/sockshim/internal/intercept"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		proxy   = pflag.String("proxy", "", "SOCKS4 proxy host:port (overrides SOCKS_SERVER/SOCKS_PORT)")
		verbose = pflag.Bool("verbose", false, "Log connection progress to stderr")
	)

	pflag.CommandLine.SortFlags = false
	pflag.Parse()

	if pflag.NArg() != 1 {
		return errors.New("usage: sockshim [flags] host:port")
	}
	target := pflag.Arg(0)

	cfg, err := buildConfig(*proxy)
	if err != nil {
		return err
	}

	if *verbose {
		if cfg.Enabled() {
			log.Printf("connecting to %s via SOCKS4 proxy", target)
		} else {
			log.Printf("no proxy configured, connecting to %s directly", target)
		}
	}

	conn, err := dialer.New(cfg).DialContext(context.Background(), "tcp", target)
	if err != nil {
		return fmt.Errorf("connect %s: %w", target, err)
	}
	defer conn.Close()

	if *verbose {
		log.Printf("connected to %s", target)
	}

	return pipe(conn)
}

// buildConfig returns the environment-driven process config, or one built
// from the --proxy flag. An explicit flag that does not resolve is an
// error, unlike the environment's silent passthrough.
func buildConfig(proxy string) (*intercept.Config, error) {
	if proxy == "" {
		return intercept.Process(), nil
	}

	host, port, err := net.SplitHostPort(proxy)
	if err != nil {
		return nil, fmt.Errorf("invalid --proxy: %w", err)
	}

	endpoints := intercept.ResolveEndpoints(host, port)
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("invalid --proxy: %s does not resolve to an IPv4 endpoint", proxy)
	}

	return intercept.New(intercept.RealConnect(), endpoints), nil
}

// pipe copies stdin to conn and conn to stdout until both directions end,
// half-closing the write side when stdin is exhausted so the peer sees EOF.
func pipe(conn net.Conn) error {
	g := new(errgroup.Group)

	g.Go(func() error {
		_, err := io.Copy(conn, os.Stdin)
		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.CloseWrite()
		}
		return err
	})

	g.Go(func() error {
		_, err := io.Copy(os.Stdout, conn)
		return err
	})

	return g.Wait()
}
