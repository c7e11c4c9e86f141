package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/tao/internal/library"
)

// textWidth is the wrap column for text output.
const textWidth = 78

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Chapters could not be loaded, state could not be saved
	ExitCommandError = 2 // Bad arguments or configuration
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from err. Errors that are not an
// ExitError map to ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as text or JSON.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Response is the JSON envelope for every command result.
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// Emit writes data as JSON, or calls text to write the human form.
func (f *OutputFormatter) Emit(data any, text func(w io.Writer)) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetEscapeHTML(false)
		return enc.Encode(Response{Status: "ok", Data: data})
	}
	text(f.Writer)
	return nil
}

// ChapterView is the full rendering of one chapter.
type ChapterView struct {
	Chapter        int      `json:"chapter"`
	Title          string   `json:"title"`
	OriginalText   string   `json:"original_text,omitempty"`
	Translation    string   `json:"translation"`
	Interpretation string   `json:"interpretation"`
	Keywords       []string `json:"keywords"`
	Favorite       bool     `json:"favorite"`
}

// SummaryView is one line of a chapter list.
type SummaryView struct {
	Chapter  int    `json:"chapter"`
	Title    string `json:"title"`
	Favorite bool   `json:"favorite"`
}

func chapterView(ch library.Chapter, original, favorite bool) ChapterView {
	v := ChapterView{
		Chapter:        ch.Ordinal,
		Title:          ch.Title,
		Translation:    ch.Translation,
		Interpretation: ch.Interpretation,
		Keywords:       ch.Keywords,
		Favorite:       favorite,
	}
	if original {
		v.OriginalText = ch.OriginalText
	}
	if v.Keywords == nil {
		v.Keywords = []string{}
	}
	return v
}

func writeChapter(w io.Writer, v ChapterView) {
	marker := ""
	if v.Favorite {
		marker = " ★"
	}
	fmt.Fprintf(w, "Chapter %d%s: %s\n\n", v.Chapter, marker, v.Title)
	if v.OriginalText != "" {
		fmt.Fprintf(w, "%s\n\n", v.OriginalText)
	}
	fmt.Fprintf(w, "%s\n\n", wordwrap.String(v.Translation, textWidth))
	if v.Interpretation != "" {
		fmt.Fprintf(w, "Interpretation:\n%s\n\n", wordwrap.String(v.Interpretation, textWidth))
	}
	if len(v.Keywords) > 0 {
		fmt.Fprintln(w, wordwrap.String("Keywords: "+strings.Join(v.Keywords, ", "), textWidth))
	}
}

func writeSummaries(w io.Writer, items []SummaryView, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	for _, it := range items {
		marker := " "
		if it.Favorite {
			marker = "★"
		}
		fmt.Fprintf(w, "%s %2d  %s\n", marker, it.Chapter, it.Title)
	}
}
