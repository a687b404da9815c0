package messageplugin

import (
	"fmt"
	"io"
	"os"
)

// MessagePrefix is written in front of every message
const MessagePrefix = "Plugin Message: "

// MessagePlugin writes every message it receives to its sink as a single
// "Plugin Message: <message>" line.
type MessagePlugin struct {
	out io.Writer
}

// NewMessagePlugin returns a plugin writing to out; nil means os.Stdout
func NewMessagePlugin(out io.Writer) *MessagePlugin {
	if out == nil {
		out = os.Stdout
	}
	return &MessagePlugin{out: out}
}

func (*MessagePlugin) Name() string { return "message" }

// Log writes one line per call. The line goes out in a single Write so
// concurrent callers never interleave inside a line.
func (p *MessagePlugin) Log(message any) error {
	_, err := io.WriteString(p.writer(), FormatMessage(message)+"\n")
	return err
}

func (p *MessagePlugin) writer() io.Writer {
	if p.out == nil {
		return os.Stdout
	}
	return p.out
}

// FormatMessage renders message the way MessagePlugin writes it, without the newline
func FormatMessage(message any) string {
	return MessagePrefix + fmt.Sprint(message)
}
