package main

import (
	"fmt"
	"os"
)

func main() {
	// Default to the terminal UI
	subcommand := "tui"
	args := []string{}
	if len(os.Args) >= 2 {
		subcommand = os.Args[1]
		args = os.Args[2:]
	}

	switch subcommand {
	case "tui":
		handleTUI(args)
	case "list":
		handleList(args)
	case "show":
		handleShow(args)
	case "serve":
		handleServe(args)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("newscards - Headline reader for a single news listing page")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  newscards [command] [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  tui        Browse headlines interactively (default)")
	fmt.Println("  list       Print the current headlines")
	fmt.Println("  show <n>   Print the article behind headline n")
	fmt.Println("  serve      Serve headlines over a JSON API")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Common flags:")
	fmt.Println("  -config         Config file (default: ~/.newscards/config.yaml)")
	fmt.Println("  -url            Listing page URL")
	fmt.Println("  -selector       CSS selector for headline links")
	fmt.Println("  -dark           Use the dark theme")
	fmt.Println("  -derive-origin  Resolve relative links against the listing URL")
	fmt.Println("  -timeout        Per-request timeout (default: none)")
	fmt.Println("  -user-agent     User-Agent header (default: Mozilla/5.0)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  NEWSCARDS_CONFIG      Config file path")
	fmt.Println("  NEWSCARDS_URL         Listing page URL")
	fmt.Println("  NEWSCARDS_SELECTOR    CSS selector for headline links")
	fmt.Println("  NEWSCARDS_DARK        Use the dark theme (true/false)")
	fmt.Println("  NEWSCARDS_USER_AGENT  User-Agent header")
	fmt.Println("  NEWSCARDS_TIMEOUT     Per-request timeout (e.g., 10s)")
	fmt.Println("  NEWSCARDS_LOG         Log file used while the UI is open")
}
