package pipeline

import (
	"bytes"
	"regexp"
	"strings"
)

const (
	ansiEscapeSequencePatternConstant = "\x1b\\[[0-9;]*[A-Za-z]"
	emptyStringConstant               = ""
)

var ansiEscapeSequenceExpression = regexp.MustCompile(ansiEscapeSequencePatternConstant)

// OutputSink receives the output produced by the in-process stage.
type OutputSink interface {
	// WriteText appends display text, stripping terminal decoration on capture.
	WriteText(text string)
	// WriteRawBytes appends bytes exactly as supplied.
	WriteRawBytes(payload []byte)
}

// CaptureSink accumulates in-process stage output in memory so it can be
// replayed as standard input for the external stages. Text passes through a
// pending buffer that is flushed before any raw bytes are written, so the
// captured order always matches the call order.
type CaptureSink struct {
	pendingText     strings.Builder
	capturedContent bytes.Buffer
}

// NewCaptureSink constructs an empty sink.
func NewCaptureSink() *CaptureSink {
	return &CaptureSink{}
}

// WriteText appends display text with ANSI escape sequences removed.
func (sink *CaptureSink) WriteText(text string) {
	sink.pendingText.WriteString(ansiEscapeSequenceExpression.ReplaceAllString(text, emptyStringConstant))
}

// WriteRawBytes appends the payload untouched after flushing buffered text.
func (sink *CaptureSink) WriteRawBytes(payload []byte) {
	sink.flushPendingText()
	sink.capturedContent.Write(payload)
}

// Contents returns everything captured so far.
func (sink *CaptureSink) Contents() string {
	sink.flushPendingText()
	return sink.capturedContent.String()
}

func (sink *CaptureSink) flushPendingText() {
	if sink.pendingText.Len() == 0 {
		return
	}
	sink.capturedContent.WriteString(sink.pendingText.String())
	sink.pendingText.Reset()
}
