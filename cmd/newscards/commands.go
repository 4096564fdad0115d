package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pevans/newscards/app"
	"github.com/pevans/newscards/tui"
)

func handleTUI(args []string) {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	cf := registerCommonFlags(fs)
	fs.Parse(args)

	cfg := mustLoadConfig(fs, cf)

	// The UI owns the terminal, so logs go to a file or nowhere
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "newscards")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if err := tui.Run(tui.New(cfg.Fetcher(), cfg.Source)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func handleList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	cf := registerCommonFlags(fs)
	format := fs.String("format", "table", "Output format: table, json")
	width := fs.Int("width", 100, "Maximum line width for table output")
	fs.Parse(args)

	cfg := mustLoadConfig(fs, cf)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := app.Reload(ctx, cfg.Fetcher(), app.NewState(cfg.Source))

	switch *format {
	case "json":
		printListJSON(st.Feed)
	case "table":
		printListTable(st.Feed, *width)
	default:
		fmt.Fprintf(os.Stderr, "Error: --format must be 'table' or 'json'\n")
		os.Exit(1)
	}
}

func handleShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	cf := registerCommonFlags(fs)
	width := fs.Int("width", 80, "Wrap text at this width")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: item number is required\n")
		fmt.Fprintf(os.Stderr, "Usage: newscards show [flags] <n>\n")
		os.Exit(1)
	}

	// Items are numbered from 1 on screen
	n, err := strconv.Atoi(fs.Arg(0))
	if err != nil || n < 1 {
		fmt.Fprintf(os.Stderr, "Error: invalid item number: %s\n", fs.Arg(0))
		os.Exit(1)
	}

	cfg := mustLoadConfig(fs, cf)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher := cfg.Fetcher()
	st := app.Reload(ctx, fetcher, app.NewState(cfg.Source))
	if n > st.Feed.Len() {
		fmt.Fprintf(os.Stderr, "Error: only %d items available\n", st.Feed.Len())
		os.Exit(1)
	}

	detail := app.OpenDetail(ctx, fetcher, st.Feed, st.Feed.Generation, n-1)
	printDetail(detail, *width)
}

func handleServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cf := registerCommonFlags(fs)
	addr := fs.String("addr", getEnv("NEWSCARDS_ADDR", "localhost:8080"), "Listen address (NEWSCARDS_ADDR)")
	fs.Parse(args)

	cfg := mustLoadConfig(fs, cf)

	session := app.NewSession(cfg.Fetcher(), cfg.Source)
	session.Reload(context.Background())

	router := app.NewAPIServer(session).SetupRouter()

	log.Printf("Starting newscards API server on http://%s/api/v1/items", *addr)
	if err := router.Run(*addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
