package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sys/unix"

	intoerrorinternal "github.com/tikhop/IntoError/internal/intoerror"
)

var Version = "dev"

var (
	bFlag = flag.String("b", "", "comma-separated extra build tags")
	tFlag = flag.Bool("t", false, "include tests")
	oFlag = flag.String("o", "", "output file name")
	fFlag = flag.String("f", "", "fallback variant name")
	cFlag = flag.String("c", "auto", "colorize (auto|always|never)")
)

func init() {
	intoerrorinternal.Version = Version
}

func main() {
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	color := false
	switch *cFlag {
	case "auto":
		color = isatty()
	case "always":
		color = true
	case "never":
		color = false
	default:
		fmt.Fprintln(os.Stderr, "invalid -c value:", *cFlag)
		os.Exit(1)
	}

	opts, err := intoerrorinternal.LoadOptions(wd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// Flags override intoerror.yaml.
	if *oFlag != "" {
		opts.OutFile = *oFlag
	}
	if *bFlag != "" {
		opts.Tags = *bFlag
	}
	if *fFlag != "" {
		opts.Fallback = *fFlag
	}

	outs, err := intoerrorinternal.Main(context.Background(), wd, os.Environ(), *tFlag, opts, flag.Args())
	if err != nil {
		message := err.Error()
		if color {
			message = colorize(message)
		}
		fmt.Fprintln(os.Stderr, message)
		os.Exit(1)
	}

	for out, code := range outs {
		if err := os.WriteFile(out, code, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if relOut, err := filepath.Rel(wd, out); err == nil {
			out = relOut
		}
		fmt.Println("Generated:", out)
	}
}

// isatty reports whether the program is running in a terminal. If it is true,
// we can use ANSI color codes.
func isatty() bool {
	_, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

// rePos matches the position prefix of a fault line, "file:line:col: " or
// "-:-: " for faults without a position.
var rePos = regexp.MustCompile(`^(\S+:\d+:\d+|-:-): `)

// colorize adds ANSI color codes to the message. Each fault is one line with
// a position prefix; the prefix is dimmed and the fault text is highlighted.
func colorize(message string) string {
	const (
		red   = "\033[31m"
		dim   = "\033[2m"
		reset = "\033[0m"
	)
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		m := rePos.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lines[i] = dim + m[1] + ":" + reset + " " + red + line[len(m[0]):] + reset
	}
	return strings.Join(lines, "\n")
}
