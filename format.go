package filelog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// formatMessage renders one record. The result always ends with a single newline.
// The caller must hold l.mu.
func (l *Logger) formatMessage(level Severity, msg interface{}, ctx Fields) (string, error) {
	text := MessageText(msg)

	var b strings.Builder
	b.Grow(128)

	if l.conf.LogFormat != "" {
		line, err := l.applyTemplate(level, text, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
	} else {
		b.WriteByte('[')
		b.WriteString(l.timestamp())
		b.WriteString("] [")
		b.WriteString(string(level))
		b.WriteString("] ")
		b.WriteString(text)
	}

	if l.conf.AppendContext && len(ctx) > 0 {
		dump, err := dumpContext(ctx)
		if err != nil {
			return "", err
		}
		b.WriteByte('\n')
		b.WriteString(dump)
	}

	out := strings.TrimRight(b.String(), "\r\n")
	return out + "\n", nil
}

// applyTemplate substitutes the known placeholders in LogFormat. Anything else
// in braces is left untouched.
func (l *Logger) applyTemplate(level Severity, text string, ctx Fields) (string, error) {
	format := l.conf.LogFormat
	pairs := []string{
		"{date}", l.timestamp(),
		"{level}", strings.ToUpper(string(level)),
		"{level-padding}", strings.Repeat(" ", max(levelColumn-len(level), 0)),
		"{priority}", strconv.Itoa(level.Priority()),
		"{message}", text,
	}
	if strings.Contains(format, "{context}") {
		compact, err := compactContext(ctx)
		if err != nil {
			return "", err
		}
		pairs = append(pairs, "{context}", compact)
	}
	return strings.NewReplacer(pairs...).Replace(format), nil
}

// timestamp reads the clock and formats it with the configured layout. The
// fractional second is derived from the full-resolution reading and truncated
// to microseconds, so layouts with ".000000" never show rounding artefacts.
func (l *Logger) timestamp() string {
	now := l.clock()
	micros := int64(now.Nanosecond()) / int64(time.Microsecond)
	now = time.Unix(now.Unix(), micros*int64(time.Microsecond)).In(now.Location())

	layout := l.conf.DateFormat
	if layout == "" {
		layout = DefaultDateFormat
	}
	return now.Format(layout)
}

// MessageText resolves a message into plain text: strings as is, nil as the
// empty string, anything else through fmt.Sprint. A nil pointer whose String or
// Error method dereferences its receiver renders as "<nil>".
func MessageText(msg interface{}) string {
	switch m := msg.(type) {
	case nil:
		return ""
	case string:
		return m
	default:
		return fmt.Sprint(m)
	}
}
