package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// goJSONSource adapts go-json's streaming Decoder to TokenSource. The decoder
// does not distinguish object keys from string values, so a small stack
// tracks whether the next string in an object is a key.
//
// Decoder.Token skips ':' and ',' without checking them, so every byte read
// is also kept in raw and checked by CheckSyntax once the stream is drained.
type goJSONSource struct {
	dec   *j.Decoder
	raw   bytes.Buffer
	stack []frame
}

// NewReader wraps an io.Reader into a TokenSource using go-json.
func NewReader(r io.Reader) TokenSource {
	s := &goJSONSource{}
	s.dec = j.NewDecoder(io.TeeReader(r, &s.raw))
	s.dec.UseNumber()
	return s
}

// CheckSyntax reports separators the token stream let through. It is only
// meaningful after the stream has returned io.EOF. go-json's own Valid also
// range-checks numbers, so the grammar-only scanner of encoding/json is used.
func (s *goJSONSource) CheckSyntax() error {
	data := s.raw.Bytes()
	if json.Valid(data) {
		return nil
	}
	msg := "invalid JSON"
	var v any
	var se *json.SyntaxError
	if err := json.Unmarshal(data, &v); errors.As(err, &se) {
		msg += ": " + se.Error() + " at offset " + strconv.FormatInt(se.Offset, 10)
	}
	return IssueError{Code: CodeSyntax, Message: msg}
}

// NewBytes wraps a byte slice into a TokenSource using go-json.
func NewBytes(b []byte) TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *goJSONSource) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return Token{Kind: KindBeginObject}, nil
		case '}':
			s.pop()
			return Token{Kind: KindEndObject}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return Token{Kind: KindBeginArray}, nil
		case ']':
			s.pop()
			return Token{Kind: KindEndArray}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return Token{Kind: KindKey, String: v}, nil
			}
		}
		s.valueDone()
		return Token{Kind: KindString, String: v}, nil
	case bool:
		s.valueDone()
		return Token{Kind: KindBool, Bool: v}, nil
	case j.Number:
		s.valueDone()
		return Token{Kind: KindNumber, Number: string(v)}, nil
	case float64:
		s.valueDone()
		return Token{Kind: KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case nil:
		s.valueDone()
		return Token{Kind: KindNull}, nil
	}
	s.valueDone()
	return Token{Kind: KindNull}, nil
}

// pop closes the current container, which completes a value in the parent.
func (s *goJSONSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

// valueDone marks that the enclosing object now expects a key again.
func (s *goJSONSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
