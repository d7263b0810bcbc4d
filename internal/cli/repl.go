package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/fsmsketch"
	"github.com/aretw0/fsmsketch/internal/presentation/tui"
	"github.com/aretw0/fsmsketch/pkg/domain"
	"github.com/aretw0/fsmsketch/pkg/session"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const replHelp = `commands:
  state [label]            add a state
  rm <state>               remove a state and its transitions
  init <state>             make a state initial
  final <state>            mark a state accepting
  toggle <state>           flip acceptance
  tr <from> <to> <symbol>  add a transition
  untr <from> [to] <sym>   remove a transition (any destination without to)
  symbols <from> [to]      list transition symbols
  test [word]              decide a word (no word tests the empty word)
  trace [word]             show the active states after each symbol
  re <expression>          check bracket balance
  show                     print the automaton
  quit                     leave`

// REPL is a line console over one session.
type REPL struct {
	session *session.Session
	in      io.Reader
	out     io.Writer
	prompt  bool
	profile termenv.Profile
}

// REPLOption configures a REPL.
type REPLOption func(*REPL)

// WithPrompt forces the "> " prompt on or off.
func WithPrompt(on bool) REPLOption {
	return func(r *REPL) {
		r.prompt = on
	}
}

// WithColorProfile overrides color detection.
func WithColorProfile(p termenv.Profile) REPLOption {
	return func(r *REPL) {
		r.profile = p
	}
}

// NewREPL prints a prompt only when in is a terminal and colors verdicts only
// when out is one.
func NewREPL(s *session.Session, in io.Reader, out io.Writer, opts ...REPLOption) *REPL {
	r := &REPL{
		session: s,
		in:      in,
		out:     out,
		prompt:  isTerminal(in),
		profile: termenv.Ascii,
	}
	if isTerminal(out) {
		r.profile = termenv.ColorProfile()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run reads commands until quit, end of input or ctx is done. Lines are read
// on a separate goroutine so cancellation is seen while input is pending.
func (r *REPL) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stop := make(chan struct{})
	defer close(stop)
	lines, readErr := r.readLines(stop)

	for {
		if r.prompt {
			fmt.Fprint(r.out, "> ")
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return err
				}
				return io.EOF
			}
			line = l
		}

		cmd, rest := splitCommand(line)
		if cmd == "" {
			continue
		}
		if cmd == "quit" || cmd == "exit" || cmd == "q" {
			return nil
		}
		if err := r.exec(ctx, cmd, rest); err != nil {
			fmt.Fprintln(r.out, r.paint("error: "+err.Error(), "#f87171"))
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// readLines scans r.in until end of input or stop is closed. The error
// channel receives the scan result before lines is closed.
func (r *REPL) readLines(stop <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r.in)
		defer func() {
			readErr <- scanner.Err()
			close(lines)
		}()
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
	}()
	return lines, readErr
}

// splitCommand returns the first word of line and the rest of the line after
// the single separator that follows it.
func splitCommand(line string) (cmd, rest string) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	_, size := utf8.DecodeRuneInString(line[i:])
	return line[:i], line[i+size:]
}

func (r *REPL) exec(ctx context.Context, cmd, rest string) error {
	if cmd == "re" {
		return r.expression(ctx, rest)
	}

	args := strings.Fields(rest)
	switch cmd {
	case "help", "?":
		fmt.Fprintln(r.out, replHelp)
		return nil
	case "state":
		return r.addState(args)
	case "rm", "init", "final", "toggle":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <state>", cmd)
		}
		return r.stateCommand(cmd, args[0])
	case "tr", "untr":
		return r.transition(cmd, args)
	case "symbols":
		return r.symbols(args)
	case "test":
		return r.test(ctx, args)
	case "trace":
		return r.trace(ctx, args)
	case "show":
		r.show()
		return nil
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func (r *REPL) addState(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: state [label]")
	}
	label := ""
	if len(args) == 1 {
		label = args[0]
	}
	id, err := r.session.AddState(label)
	if err != nil {
		return err
	}
	name, err := r.session.Label(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "added %s\n", name)
	return nil
}

func (r *REPL) stateCommand(cmd, label string) error {
	id, err := r.session.Resolve(label)
	if err != nil {
		return err
	}
	switch cmd {
	case "rm":
		err = r.session.RemoveState(id)
	case "init":
		err = r.session.SetInitialState(id)
	case "final":
		err = r.session.SetFinalState(id)
	case "toggle":
		var accepting bool
		if accepting, err = r.session.ToggleStateAcceptance(id); err == nil {
			if accepting {
				fmt.Fprintf(r.out, "%s is accepting\n", label)
			} else {
				fmt.Fprintf(r.out, "%s is not accepting\n", label)
			}
		}
		return err
	}
	if err == nil {
		fmt.Fprintln(r.out, "ok")
	}
	return err
}

func (r *REPL) transition(cmd string, args []string) error {
	symbolOnly := cmd == "untr" && len(args) == 2
	if len(args) != 3 && !symbolOnly {
		if cmd == "untr" {
			return fmt.Errorf("usage: untr <from> [to] <symbol>")
		}
		return fmt.Errorf("usage: %s <from> <to> <symbol>", cmd)
	}
	from, err := r.session.Resolve(args[0])
	if err != nil {
		return err
	}
	raw := args[len(args)-1]
	if utf8.RuneCountInString(raw) != 1 {
		return fmt.Errorf("symbol %q must be a single character", raw)
	}
	symbol, _ := utf8.DecodeRuneInString(raw)

	if symbolOnly {
		err = r.session.RemoveTransitionOnSymbol(from, symbol)
	} else {
		var to domain.StateID
		if to, err = r.session.Resolve(args[1]); err != nil {
			return err
		}
		if cmd == "tr" {
			err = r.session.AddTransition(from, to, symbol)
		} else {
			err = r.session.RemoveTransition(from, to, symbol)
		}
	}
	if err == nil {
		fmt.Fprintln(r.out, "ok")
	}
	return err
}

func (r *REPL) symbols(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: symbols <from> [to]")
	}
	from, err := r.session.Resolve(args[0])
	if err != nil {
		return err
	}
	var got []rune
	if len(args) == 1 {
		got, err = r.session.OutgoingSymbols(from)
	} else {
		var to domain.StateID
		if to, err = r.session.Resolve(args[1]); err != nil {
			return err
		}
		got, err = r.session.SymbolsBetween(from, to)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "[%s]\n", string(got))
	return nil
}

func word(args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("a word cannot contain spaces")
	}
	if len(args) == 0 {
		return "", nil
	}
	return args[0], nil
}

func (r *REPL) test(ctx context.Context, args []string) error {
	w, err := word(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, r.verdict(r.session.Test(ctx, w)))
	return nil
}

func (r *REPL) verdict(v session.Verdict) string {
	switch v {
	case session.VerdictAccept:
		return r.paint(string(v), "#4ade80")
	case session.VerdictReject:
		return r.paint(string(v), "#f87171")
	default:
		return r.paint(string(v), "#facc15")
	}
}

func (r *REPL) trace(ctx context.Context, args []string) error {
	w, err := word(args)
	if err != nil {
		return err
	}
	tr := r.session.Trace(ctx, w)
	if !tr.Valid {
		fmt.Fprintln(r.out, r.verdict(session.VerdictInvalid))
		return nil
	}
	fmt.Fprintf(r.out, "  %s\n", r.stateSet(tr.Initial))
	for _, step := range tr.Steps {
		fmt.Fprintf(r.out, "%c %s\n", step.Symbol, r.stateSet(step.States))
	}
	if tr.Accepted {
		fmt.Fprintln(r.out, r.verdict(session.VerdictAccept))
	} else {
		fmt.Fprintln(r.out, r.verdict(session.VerdictReject))
	}
	return nil
}

func (r *REPL) stateSet(ids []domain.StateID) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, err := r.session.Label(id)
		if err != nil {
			name = id.String()
		}
		names = append(names, name)
	}
	return "{" + strings.Join(names, ",") + "}"
}

// expression validates text exactly as typed, spaces included.
func (r *REPL) expression(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("usage: re <expression>")
	}
	if err := r.session.CheckExpression(ctx, text); err != nil {
		fmt.Fprintf(r.out, "%s: %v\n", r.paint("invalid", "#f87171"), err)
		return nil
	}
	fmt.Fprintln(r.out, r.paint("valid", "#4ade80"))
	return nil
}

func (r *REPL) show() {
	sum := r.session.Summary()
	fmt.Fprintf(r.out, "alphabet {%s}\n", sum.Alphabet)
	for _, st := range sum.States {
		var marks []string
		if st.Initial {
			marks = append(marks, "initial")
		}
		if st.Final {
			marks = append(marks, "final")
		}
		if len(marks) > 0 {
			fmt.Fprintf(r.out, "state %s (%s)\n", st.Label, strings.Join(marks, ", "))
		} else {
			fmt.Fprintf(r.out, "state %s\n", st.Label)
		}
	}
	for _, e := range sum.Transitions {
		fmt.Fprintf(r.out, "%s -%s-> %s\n", e.From, e.Symbol, e.To)
	}
}

func (r *REPL) paint(s, hex string) string {
	return r.profile.String(s).Foreground(r.profile.Color(hex)).String()
}

// RunREPL starts a console over a fresh session until quit, end of input or
// an interrupt.
func RunREPL(ctx context.Context, opts RunOptions, in io.Reader, out io.Writer) error {
	s, err := createSession(uuid.NewString(), 0, opts)
	if err != nil {
		return err
	}
	r := NewREPL(s, in, out)
	if r.prompt {
		tui.PrintBanner(out, r.profile, fsmsketch.Version)
		printSystemMessage(out, "alphabet {%s}, type help for commands", string(s.Alphabet()))
	}
	return handleExecutionError(r.Run(ctx))
}
