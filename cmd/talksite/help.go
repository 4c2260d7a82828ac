package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: talksite <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Write Markdown pages from the talks CSV")
	fmt.Fprintln(w, "  render     Convert the Markdown pages to HTML")
	fmt.Fprintln(w, "  check      Check the structure of the built site")
	fmt.Fprintln(w, "  build      Generate, render and check")
	fmt.Fprintln(w, "  pdf        Print a site page to PDF")
	fmt.Fprintln(w, "  doctor     Check Chrome, pandoc and the environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'talksite help <command>' for details on a specific command.")
}

// printCommandUsage prints usage for a site command.
func printCommandUsage(w io.Writer, cmd string) {
	switch cmd {
	case cmdGenerate:
		fmt.Fprintln(w, "Usage: talksite generate [csv] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Validate the talks CSV and write one Markdown page per public talk plus")
		fmt.Fprintln(w, "the listing pages. Notes blocks of existing pages are kept. Invalid rows")
		fmt.Fprintln(w, "are skipped and reported; the exit code is then 2.")
	case cmdRender:
		fmt.Fprintln(w, "Usage: talksite render [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Convert every Markdown page of the content directory to HTML.")
	case cmdCheck:
		fmt.Fprintln(w, "Usage: talksite check [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Check that the site holds every expected page and that each page is")
		fmt.Fprintln(w, "well-formed HTML. Exits with 5 on errors.")
	case cmdBuild:
		fmt.Fprintln(w, "Usage: talksite build [csv] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run generate, render and check.")
	case cmdPDF:
		fmt.Fprintln(w, "Usage: talksite pdf <page.html> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print a generated page to PDF with headless Chrome.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Output:")
		fmt.Fprintln(w, "  -o, --output <path>       PDF path (default: <page>.pdf)")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: talksite)")
	fmt.Fprintln(w, "      --csv <path>          Talks CSV")
	fmt.Fprintln(w, "      --content <dir>       Markdown content directory")
	fmt.Fprintln(w, "      --site <dir>          HTML site directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --base-url <url>      Base URL or path of the site, ending with /")
	fmt.Fprintln(w, "      --build-date <date>   Split upcoming and past talks (YYYY-MM-DD, \"today\")")
	fmt.Fprintln(w, "      --converter <name>    Markdown converter: goldmark, pandoc")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w, "      --log-format <s>      Log format: console, json, pretty")
	fmt.Fprintln(w, "  -t, --timeout <d>         Command timeout (e.g., 30s, 2m)")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdGenerate, cmdRender, cmdCheck, cmdBuild, cmdPDF:
		printCommandUsage(env.Stdout, args[0])
	case cmdDoctor:
		fmt.Fprintln(env.Stdout, "Usage: talksite doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, pandoc and the environment.")
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: talksite version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: talksite help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
