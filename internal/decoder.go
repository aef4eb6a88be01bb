package internal

import (
	"encoding/json"
	"strings"
)

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"
)

// streamChunk mirrors one chat-completion chunk record on the wire
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content          string `json:"content"`
			ReasoningContent string `json:"reasoning_content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Fragment is one unit of decoded reply text
type Fragment struct {
	Delta string // text contributed by this event
	Text  string // full reply accumulated so far
}

// StreamDecoder reassembles content deltas from an arbitrarily chunked
// event stream. Chunk boundaries carry no meaning: the trailing incomplete
// line of each chunk is buffered and re-joined with the next chunk, so no
// line is interpreted before its terminating newline arrives.
//
// A decoder is single-use: create one per request.
type StreamDecoder struct {
	carry   string
	accum   strings.Builder
	started bool // a non-empty fragment has been emitted
	dropped int
}

// NewStreamDecoder creates a decoder with empty state
func NewStreamDecoder() *StreamDecoder {
	return &StreamDecoder{}
}

// Consume feeds one raw chunk to the decoder and returns the fragments
// completed by it, in order. The returned slice may be empty.
func (d *StreamDecoder) Consume(chunk string) []Fragment {
	data := d.carry + chunk
	var fragments []Fragment
	for {
		idx := strings.IndexByte(data, '\n')
		if idx < 0 {
			break
		}
		line := data[:idx]
		data = data[idx+1:]
		if frag, ok := d.decodeLine(line); ok {
			fragments = append(fragments, frag)
		}
	}
	d.carry = data
	return fragments
}

// Finalize flushes the implicit final line, if any, and returns the
// accumulated full reply text.
func (d *StreamDecoder) Finalize() string {
	if d.carry != "" {
		line := d.carry
		d.carry = ""
		d.decodeLine(line)
	}
	return d.accum.String()
}

// Text returns the reply accumulated so far
func (d *StreamDecoder) Text() string {
	return d.accum.String()
}

// Dropped returns how many malformed data lines were discarded
func (d *StreamDecoder) Dropped() int {
	return d.dropped
}

// decodeLine classifies one complete line and returns the fragment it
// produced, if any. Blank lines, the termination sentinel, and lines
// without the data prefix (comments, event annotations) produce nothing.
// A data line whose payload fails to parse is counted and discarded; a
// bad record never aborts the stream.
func (d *StreamDecoder) decodeLine(line string) (Fragment, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Fragment{}, false
	}
	if !strings.HasPrefix(trimmed, dataPrefix) {
		return Fragment{}, false
	}

	payload := strings.TrimSpace(strings.TrimPrefix(trimmed, dataPrefix))
	if payload == doneSentinel {
		return Fragment{}, false
	}

	var chunk streamChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		d.dropped++
		LogDebug("Dropping malformed stream line: %v", err)
		return Fragment{}, false
	}
	if len(chunk.Choices) == 0 {
		return Fragment{}, false
	}

	delta := chunk.Choices[0].Delta
	text := delta.ReasoningContent + delta.Content
	if !d.started {
		// Some providers prefix the reply with blank lines; strip them
		// from the first non-empty fragment only.
		text = strings.TrimLeft(text, "\r\n")
	}
	if text == "" {
		return Fragment{}, false
	}

	d.started = true
	d.accum.WriteString(text)
	return Fragment{Delta: text, Text: d.accum.String()}, true
}
