package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
	ansiYellow = "\033[33m"
)

// colorEnabled is false when NO_COLOR is set.
var colorEnabled = os.Getenv("NO_COLOR") == ""

// DisableColors turns off ANSI escapes in Format output.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI escapes back on.
func EnableColors() { colorEnabled = true }

type painter bool

func (p painter) paint(text string, codes ...string) string {
	if !p || len(codes) == 0 {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// Format renders the error for a terminal.
func (e *SquirrelError) Format() string {
	return e.format(painter(colorEnabled))
}

func (e *SquirrelError) format(p painter) string {
	paint := p.paint
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(paint("ERROR", ansiRed, ansiBold))
	if e.Code != "" {
		b.WriteString(" " + paint(e.Code, ansiBold))
	}
	b.WriteString(": " + e.Message + "\n\n")

	if e.Location != nil {
		b.WriteString("  " + paint(e.Location.String(), ansiCyan) + "\n")
		e.writeContext(&b, p)
		b.WriteString("\n")
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 72) {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		b.WriteString("  " + paint("cause: ", ansiGray) + e.Wrapped.Error() + "\n\n")
	}
	if e.Suggestion != "" {
		b.WriteString("  " + paint("Hint: ", ansiYellow) + e.Suggestion + "\n\n")
	}
	if e.DocURL != "" {
		b.WriteString("  " + paint("Learn more: "+e.DocURL, ansiGray) + "\n")
	}
	return b.String()
}

// writeContext prints the captured source lines with the failing line
// marked and, when known, a caret under the column.
func (e *SquirrelError) writeContext(b *strings.Builder, p painter) {
	paint := p.paint
	if len(e.Context) == 0 || e.Location.Line <= 0 {
		return
	}
	first := e.Location.Line - contextRadius
	if first < 1 {
		first = 1
	}
	for i, line := range e.Context {
		n := first + i
		if n != e.Location.Line {
			fmt.Fprintf(b, "    %4d %s %s\n", n, paint("|", ansiGray), line)
			continue
		}
		fmt.Fprintf(b, "  %s%4d %s %s\n", paint("> ", ansiRed), n, paint("|", ansiGray), line)
		if e.Location.Column > 0 {
			fmt.Fprintf(b, "         %s %s%s\n", paint("|", ansiGray), strings.Repeat(" ", e.Location.Column-1), paint("^", ansiRed))
		}
	}
}

// FormatCompact renders the error on one line: location, code, message.
func (e *SquirrelError) FormatCompact() string {
	var b strings.Builder
	if e.Location != nil {
		b.WriteString(e.Location.String() + ": ")
	}
	if e.Code != "" {
		b.WriteString(e.Code + ": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

type jsonError struct {
	Code       string    `json:"code,omitempty"`
	Category   Category  `json:"category,omitempty"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	DocURL     string    `json:"docUrl,omitempty"`
	Cause      string    `json:"cause,omitempty"`
}

// MarshalJSON encodes the error for API responses. Context lines are
// omitted.
func (e *SquirrelError) MarshalJSON() ([]byte, error) {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Location:   e.Location,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	return json.Marshal(out)
}

func wrapText(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// Print writes err to w, using Format for coded errors. Colors are used
// only when w is a terminal.
func Print(w io.Writer, err error) {
	p := painter(colorEnabled && isTerminal(w))
	var se *SquirrelError
	if As(err, &se) {
		fmt.Fprint(w, se.format(p))
		return
	}
	fmt.Fprintf(w, "\n%s: %s\n\n", p.paint("ERROR", ansiRed, ansiBold), err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
