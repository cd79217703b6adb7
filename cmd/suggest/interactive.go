package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/urfave/cli/v2"

	"autosuggest/internal/autocomplete"
	"autosuggest/internal/models"
	"autosuggest/internal/validation"
)

// Line commands. Anything else replaces the input text.
const (
	cmdDown  = ":down"
	cmdUp    = ":up"
	cmdEnter = ":enter"
	cmdEsc   = ":esc"
	cmdPick  = ":pick"
	cmdQuit  = ":quit"
)

// action is a parsed input line.
type action struct {
	kind  string
	input string
	index int
}

func parseLine(line string) (action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], ":") {
		return action{kind: "input", input: line}, nil
	}

	switch fields[0] {
	case cmdDown, cmdUp, cmdEnter, cmdEsc, cmdQuit:
		return action{kind: fields[0]}, nil
	case cmdPick:
		if len(fields) != 2 {
			return action{}, fmt.Errorf("usage: %s <n>", cmdPick)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return action{}, fmt.Errorf("invalid suggestion number %q", fields[1])
		}
		return action{kind: cmdPick, index: n - 1}, nil
	default:
		return action{}, fmt.Errorf("unknown command %s", fields[0])
	}
}

// syncWriter serializes renders from timer callbacks and the input loop.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, format, args...)
}

func render(out *syncWriter, snap autocomplete.Snapshot, imageBase string) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %q\n", snap.State, snap.Input)
	for i, s := range snap.Suggestions {
		marker := " "
		if i == snap.Selected {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %2d. %-24s %6d", marker, i+1, s.Term, s.Popularity)
		if s.Description != nil {
			fmt.Fprintf(&b, "  %s", *s.Description)
		}
		if url := s.ImageURL(imageBase); url != "" {
			fmt.Fprintf(&b, "  <%s>", url)
		}
		b.WriteByte('\n')
	}
	out.printf("%s", b.String())
}

func interactiveCommand(c *cli.Context) error {
	if ok, msg := validation.ValidateURL(c.String("server")); !ok {
		return fmt.Errorf("--server: %s", msg)
	}
	client := autocomplete.NewClient(c.String("server"), nil)
	return runInteractive(os.Stdin, os.Stdout, client, client, autocomplete.Options{
		Delay: c.Duration("debounce"),
		Limit: c.Int("limit"),
	}, c.String("image-base"))
}

// runInteractive drives a coordinator from lines read on in until EOF or
// :quit. Settled states are rendered to out.
func runInteractive(in io.Reader, out io.Writer, fetcher autocomplete.Fetcher, recorder autocomplete.Recorder, opts autocomplete.Options, imageBase string) error {
	w := &syncWriter{w: out}

	opts.OnUpdate = func(snap autocomplete.Snapshot) {
		if snap.State != autocomplete.Debouncing && snap.State != autocomplete.Fetching {
			render(w, snap, imageBase)
		}
	}
	opts.OnSearch = func(term string) {
		w.printf("search: %s\n", term)
	}

	coord := autocomplete.NewCoordinator(fetcher, recorder, opts)
	defer coord.Close()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		act, err := parseLine(scanner.Text())
		if err != nil {
			w.printf("%v\n", err)
			continue
		}

		switch act.kind {
		case "input":
			coord.SetInput(act.input)
		case cmdDown:
			coord.MoveDown()
		case cmdUp:
			coord.MoveUp()
		case cmdEsc:
			coord.Cancel()
		case cmdEnter:
			if _, ok := coord.Commit(); !ok {
				w.printf("nothing to search\n")
			}
		case cmdPick:
			if _, ok := coord.Choose(act.index); !ok {
				w.printf("no suggestion %d\n", act.index+1)
			}
		case cmdQuit:
			return nil
		}
	}
	return scanner.Err()
}

// printSuggestions writes a one-shot result list.
func printSuggestions(out io.Writer, resp *models.SearchResponse) {
	fmt.Fprintf(out, "query: %q\n", resp.Query)
	for i, s := range resp.Suggestions {
		fmt.Fprintf(out, "%2d. %-24s %6d\n", i+1, s.Term, s.Popularity)
	}
}
