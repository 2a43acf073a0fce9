package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/formrules/pkg/formrules/postfix"
)

const (
	replPrompt  = "postfix> "
	historyFile = ".formrules_history"
)

const replHelp = `Enter a postfix expression to evaluate it against the current variables.

  :set NAME VALUE   bind a variable (VALUE may contain spaces)
  :unset NAME       remove a variable
  :vars             list variables
  :trace            toggle stack tracing
  :ops              list operators
  :help             show this help
  :quit             exit (also Ctrl+D)`

// errQuit ends the REPL loop.
var errQuit = errors.New("quit")

// session holds REPL state. It is driven one line at a time so it can be
// exercised without a terminal.
type session struct {
	vars  map[string]any
	opts  []postfix.Option
	trace bool
	out   io.Writer

	// variable delimiters in effect, for completion
	start, end string
}

func newSession(out io.Writer, opts []postfix.Option) *session {
	cfg := postfix.New(opts...).Config()
	return &session{
		vars:  map[string]any{},
		opts:  opts,
		out:   out,
		start: cfg.VariableStartDelimiter,
		end:   cfg.VariableEndDelimiter,
	}
}

// exec runs one line of input.
func (s *session) exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, ":") {
		if line == "exit" || line == "quit" {
			return errQuit
		}
		return s.eval(line)
	}

	cmd, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "set":
		name, value, ok := strings.Cut(rest, " ")
		if !ok || name == "" {
			return fmt.Errorf("usage: :set NAME VALUE")
		}
		s.vars[name] = value
	case "unset":
		delete(s.vars, rest)
	case "vars":
		names := make([]string, 0, len(s.vars))
		for name := range s.vars {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(s.out, "%s = %q\n", name, postfix.FormatOperand(s.vars[name]))
		}
	case "trace":
		s.trace = !s.trace
		fmt.Fprintf(s.out, "trace %s\n", onOff(s.trace))
	case "ops":
		fmt.Fprintln(s.out, strings.Join(postfix.New(s.opts...).Operators(), " "))
	case "help":
		fmt.Fprintln(s.out, replHelp)
	case "quit", "q", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command :%s (try :help)", cmd)
	}
	return nil
}

func (s *session) eval(expr string) error {
	opts := slices.Clone(s.opts)
	if s.trace {
		opts = append(opts, postfix.WithTrace(func(st postfix.Step) {
			printStep(s.out, st)
		}))
	}
	value, err := postfix.Evaluate(expr, s.vars, opts...)
	if err != nil {
		return err
	}
	okColor.Fprintln(s.out, postfix.FormatOperand(value))
	return nil
}

// complete offers REPL commands and variable references.
func (s *session) complete(line string) []string {
	var candidates []string
	if strings.HasPrefix(line, ":") {
		for _, c := range []string{":set ", ":unset ", ":vars", ":trace", ":ops", ":help", ":quit"} {
			if strings.HasPrefix(c, line) {
				candidates = append(candidates, c)
			}
		}
		return candidates
	}

	i := strings.LastIndex(line, s.start)
	if i < 0 || strings.Contains(line[i+len(s.start):], s.end) {
		return nil
	}
	prefix := line[i+len(s.start):]
	for name := range s.vars {
		if strings.HasPrefix(name, prefix) {
			candidates = append(candidates, line[:i]+s.start+name+s.end)
		}
	}
	slices.Sort(candidates)
	return candidates
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func newReplCmd() *cobra.Command {
	f := &evalFlags{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively evaluate postfix expressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return err
			}
			return runRepl(cmd.OutOrStdout(), newSession(cmd.OutOrStdout(), opts))
		},
	}
	f.register(cmd)
	return cmd
}

func runRepl(out io.Writer, s *session) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)

	history := filepath.Join(os.TempDir(), historyFile)
	if f, err := os.Open(history); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(out, "Type :help for commands, Ctrl+D to quit")
	for {
		input, err := line.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out, "^C")
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		if err := s.exec(input); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			printError(out, err)
		}
	}
}
