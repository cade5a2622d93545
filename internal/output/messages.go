package output

import (
	"fmt"
	"io"
)

// Mutation reports the outcome of a mutating command. Structured formats get
// an envelope of {changed, action, target}; the others get a single status
// line unless quiet.
func (r *Renderer) Mutation(changed bool, action, target, schema string, opts ...Option) error {
	if r.format.Structured() {
		if schema == "" {
			schema = fmt.Sprintf("eero.mutation.%s/v1", action)
		}
		data := Record{
			{Key: "changed", Value: changed},
			{Key: "action", Value: action},
			{Key: "target", Value: target},
		}
		return r.Render(data, schema, opts...)
	}
	if r.quiet {
		return nil
	}
	marker := r.styles.render(r.styles.success, "✓")
	if !changed {
		marker = r.styles.render(r.styles.pending, "•")
	}
	_, err := fmt.Fprintf(r.out, "%s %s: %s\n", marker, action, target)
	return err
}

// Success prints a confirmation line unless quiet.
func (r *Renderer) Success(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.messages(), "%s %s\n", r.styles.render(r.styles.success, "✓"), fmt.Sprintf(format, args...))
}

// Info prints an informational line unless quiet.
func (r *Renderer) Info(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.messages(), "%s %s\n", r.styles.render(r.styles.info, "ℹ"), fmt.Sprintf(format, args...))
}

// Warning prints to stderr. Warnings are never suppressed.
func (r *Renderer) Warning(format string, args ...any) {
	fmt.Fprintf(r.err, "%s %s\n", r.errStyles.render(r.errStyles.warning, "Warning:"), fmt.Sprintf(format, args...))
}

// Error prints an error line and an optional hint to stderr.
func (r *Renderer) Error(msg, hint string) {
	fmt.Fprintf(r.err, "%s %s\n", r.errStyles.render(r.errStyles.failure, "Error:"), msg)
	if hint != "" {
		fmt.Fprintln(r.err, r.errStyles.render(r.errStyles.hint, "Hint: "+hint))
	}
}

// messages is where operator-facing lines go: stdout normally, stderr when
// stdout carries a structured envelope.
func (r *Renderer) messages() io.Writer {
	if r.format.Structured() {
		return r.err
	}
	return r.out
}
