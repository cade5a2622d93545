// Package safety decides whether a disruptive operation may run. Every
// mutating command passes through a Gate before it issues the vendor call.
package safety

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fulviofreitas/eeroctl/internal/exitcode"
)

// Risk is the impact tier of an operation.
type Risk int

const (
	// Low risk operations run without confirmation.
	Low Risk = iota
	// Medium risk operations need a yes/no answer.
	Medium
	// High risk operations need the confirmation phrase typed back.
	High
)

func (r Risk) String() string {
	switch r {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return fmt.Sprintf("risk(%d)", int(r))
}

// Request describes one operation awaiting approval.
type Request struct {
	Action string
	Target string
	Risk   Risk
	// Phrase overrides the derived confirmation phrase for high risk requests.
	Phrase string
}

// ConfirmationPhrase returns the text the operator must type for a high
// risk request: the action upper-cased with all spaces removed unless an
// explicit phrase was given.
func (r Request) ConfirmationPhrase() string {
	if r.Phrase != "" {
		return r.Phrase
	}
	return strings.ReplaceAll(strings.ToUpper(r.Action), " ", "")
}

// Flags are the invocation switches that influence the gate.
type Flags struct {
	Force          bool
	NonInteractive bool
	DryRun         bool
}

// Outcome is the kind of decision the gate reached.
type Outcome int

const (
	Proceed Outcome = iota
	DryRunSkipped
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Proceed:
		return "proceed"
	case DryRunSkipped:
		return "dry-run"
	case Denied:
		return "denied"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Decision is the result of evaluating a request.
type Decision struct {
	Outcome Outcome
	// Reason is set when Outcome is Denied.
	Reason string
}

// Err returns a *Error for a denied decision and nil otherwise.
func (d Decision) Err() error {
	if d.Outcome != Denied {
		return nil
	}
	return &Error{Reason: d.Reason}
}

// Error reports a refused confirmation. It always maps to exit code 8.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// ExitCode implements exitcode.Coder.
func (e *Error) ExitCode() exitcode.Code { return exitcode.SafetyRail }

// Gate prompts on out and reads answers from in.
type Gate struct {
	in  *bufio.Reader
	out io.Writer
}

// NewGate returns a Gate reading from in and prompting on out. Nil values
// default to stdin and stderr.
func NewGate(in io.Reader, out io.Writer) *Gate {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	return &Gate{in: bufio.NewReader(in), out: out}
}

// Evaluate applies the decision order dry-run, force, low risk,
// non-interactive, then the interactive prompt for the request's tier.
func (g *Gate) Evaluate(req Request, flags Flags) Decision {
	if flags.DryRun {
		fmt.Fprintf(g.out, "DRY RUN: Would %s %s\n", req.Action, req.Target)
		return Decision{Outcome: DryRunSkipped}
	}
	if flags.Force || req.Risk == Low {
		return Decision{Outcome: Proceed}
	}
	if flags.NonInteractive {
		return Decision{
			Outcome: Denied,
			Reason: fmt.Sprintf("Operation '%s' on '%s' requires confirmation. "+
				"Use --force to proceed in non-interactive mode.", req.Action, req.Target),
		}
	}
	if req.Risk == High {
		return g.confirmPhrase(req)
	}
	return g.confirmYesNo(req)
}

// Require evaluates the request and reports whether the caller should issue
// the operation. A dry run returns false with a nil error.
func (g *Gate) Require(req Request, flags Flags) (bool, error) {
	d := g.Evaluate(req, flags)
	if err := d.Err(); err != nil {
		return false, err
	}
	return d.Outcome == Proceed, nil
}

func (g *Gate) confirmYesNo(req Request) Decision {
	fmt.Fprintf(g.out, "\nProceed with %s on %s?\n", req.Action, req.Target)
	fmt.Fprint(g.out, "Continue? [y/N]: ")
	answer, err := g.readLine()
	if err != nil {
		fmt.Fprintln(g.out)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "y" || answer == "yes" {
		return Decision{Outcome: Proceed}
	}
	return Decision{Outcome: Denied, Reason: "Operation cancelled by user."}
}

func (g *Gate) confirmPhrase(req Request) Decision {
	phrase := req.ConfirmationPhrase()
	fmt.Fprintf(g.out, "\n⚠ Warning: You are about to %s %s.\n", req.Action, req.Target)
	fmt.Fprintln(g.out, "This is a high-impact operation that may cause service disruption.")
	fmt.Fprintf(g.out, "\nTo confirm, type %s and press Enter:\n", phrase)
	fmt.Fprint(g.out, "Confirmation: ")
	answer, err := g.readLine()
	if err != nil {
		fmt.Fprintln(g.out)
	}
	// The phrase comparison is exact; only the line terminator is dropped.
	if err != nil || answer != phrase {
		return Decision{
			Outcome: Denied,
			Reason:  fmt.Sprintf("Confirmation phrase mismatch. Expected '%s'.", phrase),
		}
	}
	return Decision{Outcome: Proceed}
}

// Prompt writes label to the prompt sink and reads one answer line. It
// shares the gate's reader so buffered input is not lost between prompts.
func (g *Gate) Prompt(label string) (string, error) {
	fmt.Fprint(g.out, label)
	answer, err := g.readLine()
	if err != nil {
		fmt.Fprintln(g.out)
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// readLine returns one line without its terminator. A final line without a
// newline is still returned; an empty read at EOF yields io.EOF.
func (g *Gate) readLine() (string, error) {
	line, err := g.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}
