// Package main is the entry point for the textvar tool.
//
// textvar resolves inline variant spans ({{a|b}}^n) in text files to
// their active candidates, lists the spans a file contains, and hosts
// an interactive terminal session for editing a span's candidates.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dshills/textvar/internal/codec"
	"github.com/dshills/textvar/internal/config"
	"github.com/dshills/textvar/internal/resolve"
	"github.com/dshills/textvar/internal/session"
	"github.com/dshills/textvar/internal/term"
	"github.com/dshills/textvar/internal/textbuf"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	list        bool
	edit        bool
	write       bool
	line        int
	col         int
	configPath  string
	showVersion bool
	files       []string
}

func main() {
	os.Exit(run())
}

func run() int {
	log.SetFlags(0)
	log.SetPrefix("textvar: ")

	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("textvar %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Printf("config: %v (using defaults)", err)
		cfg = config.Default()
	}

	switch {
	case opts.list:
		return runList(opts)
	case opts.edit:
		return runEdit(opts, cfg)
	default:
		return runResolve(opts)
	}
}

func parseFlags() options {
	var opts options

	flag.BoolVar(&opts.list, "list", false, "list variant spans instead of resolving")
	flag.BoolVar(&opts.edit, "edit", false, "interactively edit a span (requires one file and -line)")
	flag.BoolVar(&opts.write, "w", false, "write resolved output back to the files")
	flag.IntVar(&opts.line, "line", 1, "1-indexed line to edit")
	flag.IntVar(&opts.col, "col", 0, "0-indexed column the edited span must cover")
	flag.StringVar(&opts.configPath, "config", defaultConfigPath(), "path to the config file")
	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: textvar [flags] [file ...]\n\n")
		fmt.Fprintf(os.Stderr, "Resolves {{a|b}}^n variant spans to their active candidate.\n")
		fmt.Fprintf(os.Stderr, "With no files, reads stdin and writes stdout.\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	opts.files = flag.Args()
	return opts
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "textvar.toml"
	}
	return dir + "/textvar/textvar.toml"
}

// runResolve resolves every span in the inputs.
func runResolve(opts options) int {
	if len(opts.files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Printf("reading stdin: %v", err)
			return 1
		}
		fmt.Print(resolve.All(string(data)))
		return 0
	}

	status := 0
	for _, path := range opts.files {
		if err := resolveFile(path, opts.write); err != nil {
			log.Printf("%s: %v", path, err)
			status = 1
		}
	}
	return status
}

func resolveFile(path string, write bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	resolved := resolve.All(string(data))
	if !write {
		fmt.Print(resolved)
		return nil
	}
	if resolved == string(data) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(resolved), info.Mode().Perm())
}

// runList prints every span in the inputs with its location.
func runList(opts options) int {
	if len(opts.files) == 0 {
		log.Print("list mode requires at least one file")
		return 2
	}

	status := 0
	for _, path := range opts.files {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			status = 1
			continue
		}
		for lineNo, line := range strings.Split(string(data), "\n") {
			for _, m := range codec.Scan(line) {
				active, ok := m.Span.Active()
				if !ok {
					active = "(corrupt index)"
				}
				fmt.Printf("%s:%d:%d: %s -> %q\n",
					path, lineNo+1, m.Start+1, m.Raw, active)
			}
		}
	}
	return status
}

// runEdit opens an interactive editing session on one span.
func runEdit(opts options, cfg config.Config) int {
	if len(opts.files) != 1 {
		log.Print("edit mode requires exactly one file")
		return 2
	}
	path := opts.files[0]

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("%s: %v", path, err)
		return 1
	}

	buf := textbuf.NewBufferFromString(string(data))
	if opts.line < 1 || uint32(opts.line) > buf.LineCount() {
		log.Printf("line %d out of range", opts.line)
		return 2
	}
	line := uint32(opts.line - 1)

	sel, err := selectTarget(buf, line, opts.col)
	if err != nil {
		log.Print(err)
		return 2
	}
	buf.SetSelection(sel)

	d, err := term.New()
	if err != nil {
		log.Printf("terminal: %v", err)
		return 1
	}
	d.RejectDelimiters = cfg.RejectDelimiters
	d.TrailingRow = cfg.TrailingRow

	coord := session.NewCoordinator(session.WithConfig(cfg))
	if err := coord.Run(path, buf, d); err != nil {
		log.Printf("session: %v", err)
		return 1
	}

	info, err := os.Stat(path)
	if err != nil {
		log.Printf("%s: %v", path, err)
		return 1
	}
	if err := os.WriteFile(path, []byte(buf.Text()), info.Mode().Perm()); err != nil {
		log.Printf("%s: %v", path, err)
		return 1
	}
	return 0
}

// selectTarget picks the span on the line covering col, or the first
// span on the line when col is 0.
func selectTarget(buf *textbuf.Buffer, line uint32, col int) (textbuf.PointRange, error) {
	text := buf.LineText(line)
	for _, m := range codec.Scan(text) {
		if col == 0 || (col >= m.Start && col < m.End) {
			return textbuf.LineRange(line, uint32(m.Start), uint32(m.End)), nil
		}
	}
	return textbuf.PointRange{}, fmt.Errorf("no variant span on line %d at column %d", line+1, col)
}
