package views

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/a-h/templ"
)

// writer accumulates the first write error so components can be written as
// straight-line code.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// printf escapes every string argument before formatting.
func (w *writer) printf(format string, args ...any) {
	for i, a := range args {
		if s, ok := a.(string); ok {
			args[i] = templ.EscapeString(s)
		}
	}
	w.raw(fmt.Sprintf(format, args...))
}

func (w *writer) render(ctx context.Context, c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(ctx, w.w)
	}
}

func component(fn func(ctx context.Context, w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		fn(ctx, w)
		return w.err
	})
}

// PathEscape wraps url.PathEscape for use in templates.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// FormatDate formats t as "Jan 2, 2006", or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// ScoreClass maps an SEO score to the traffic-light class used by the
// dashboard.
func ScoreClass(score int) string {
	switch {
	case score >= 80:
		return "good"
	case score >= 60:
		return "ok"
	default:
		return "bad"
	}
}

func checked(b bool) string {
	if b {
		return " checked"
	}
	return ""
}

func selected(b bool) string {
	if b {
		return " selected"
	}
	return ""
}
