// Package engine turns JSON token streams into the plain Go trees
// (map[string]any, []any, json.Number, string, bool, nil) that the jddf
// package consumes, enforcing duplicate-key and nesting limits on the way.
package engine

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
}

// SyntaxChecker is implemented by sources whose tokens alone do not prove
// the input well formed. Decode calls it after the last token.
type SyntaxChecker interface {
	CheckSyntax() error
}

// Options controls enforcement while building a tree.
type Options struct {
	// RejectDuplicateKeys fails when an object repeats a key.
	RejectDuplicateKeys bool
	// MaxNesting caps array/object nesting; 0 means unlimited.
	MaxNesting int
}

// Issue codes carried by IssueError.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeMaxNesting   = "max_nesting"
	CodeTrailingData = "trailing_data"
	CodeSyntax       = "syntax"
)

// IssueError is a decoding failure located by a JSON Pointer.
type IssueError struct {
	Code    string
	Path    string
	Message string
}

func (e IssueError) Error() string {
	p := e.Path
	if p == "" {
		p = "/"
	}
	return e.Message + " at " + p
}

// ErrUnexpectedToken is wrapped when the token stream is structurally broken.
var ErrUnexpectedToken = errors.New("engine: unexpected token")

// Decode builds an "any" value from src and requires that nothing follows it.
func Decode(src TokenSource, opt Options) (any, error) {
	d := &decoder{src: src, opt: opt}
	tok, err := src.NextToken()
	if err != nil {
		return nil, unexpectedEOF(err)
	}
	v, err := d.value(tok, "", 0)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, IssueError{Code: CodeTrailingData, Message: "unexpected data after top-level value"}
	}
	if sc, ok := src.(SyntaxChecker); ok {
		if err := sc.CheckSyntax(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

type decoder struct {
	src TokenSource
	opt Options
}

func (d *decoder) value(tok Token, path string, depth int) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		if err := d.enter(path, depth); err != nil {
			return nil, err
		}
		return d.object(path, depth+1)
	case KindBeginArray:
		if err := d.enter(path, depth); err != nil {
			return nil, err
		}
		return d.array(path, depth+1)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, IssueError{Code: CodeSyntax, Path: path, Message: ErrUnexpectedToken.Error()}
	}
}

func (d *decoder) enter(path string, depth int) error {
	if d.opt.MaxNesting > 0 && depth+1 > d.opt.MaxNesting {
		return IssueError{Code: CodeMaxNesting, Path: path, Message: "max nesting of " + strconv.Itoa(d.opt.MaxNesting) + " exceeded"}
	}
	return nil
}

func (d *decoder) object(path string, depth int) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := d.src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, IssueError{Code: CodeSyntax, Path: path, Message: ErrUnexpectedToken.Error()}
		}
		child := joinJSONPointer(path, tok.String)
		if _, dup := m[tok.String]; dup && d.opt.RejectDuplicateKeys {
			return nil, IssueError{Code: CodeDuplicateKey, Path: child, Message: "key '" + tok.String + "' duplicated"}
		}
		vt, err := d.src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		v, err := d.value(vt, child, depth)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func (d *decoder) array(path string, depth int) (any, error) {
	arr := []any{}
	for i := 0; ; i++ {
		tok, err := d.src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := d.value(tok, joinJSONPointer(path, strconv.Itoa(i)), depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}
