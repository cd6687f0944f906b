// Package reader turns JSON text into a value tree. A tokenizer with one
// token of lookahead feeds a recursive-descent parser that has one function
// per grammar production.
package reader

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/str"
	"github.com/oarkflow/jsondoc/value"
)

// DefaultMaxDepth bounds container nesting so hostile input cannot exhaust
// the stack.
const DefaultMaxDepth = 10000

type config struct {
	maxDepth      int
	allowTrailing bool
	logger        log.Logger
	objectOpts    []value.ObjectOption
}

type Option func(*config)

// WithMaxDepth limits container nesting. n <= 0 removes the limit.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// AllowTrailingData ignores whatever follows the first complete value
// instead of failing.
func AllowTrailingData() Option {
	return func(c *config) { c.allowTrailing = true }
}

// WithLogger traces every consumed token at debug level.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithObjectOptions configures every object the reader creates.
func WithObjectOptions(opts ...value.ObjectOption) Option {
	return func(c *config) { c.objectOpts = append(c.objectOpts, opts...) }
}

// Reader parses documents into values allocated from one allocator. A Reader
// holds no per-document state and can be reused, but not concurrently with a
// non-concurrent allocator.
type Reader struct {
	alloc allocator.Allocator
	cfg   config
	trace bool
}

func New(alloc allocator.Allocator, opts ...Option) *Reader {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	trace := cfg.logger != nil
	if !trace {
		cfg.logger = log.NewNopLogger()
	}
	return &Reader{alloc: allocator.OrDefault(alloc), cfg: cfg, trace: trace}
}

// Parse reads exactly one value from data. On failure no value is returned
// and everything allocated so far has been freed.
func (r *Reader) Parse(data []byte) (*value.Value, error) {
	p := parser{
		tok: tokenizer{alloc: r.alloc, data: data},
		r:   r,
	}
	defer func() { p.tok.scratch.Free() }()

	v, err := p.readValue()
	if err != nil {
		return nil, err
	}
	if !r.cfg.allowTrailing {
		p.tok.skipWhitespace()
		if p.tok.pos < len(data) {
			v.Free()
			return nil, &ParseError{Offset: p.tok.pos, Msg: "unexpected data after document", Err: ErrTrailingData}
		}
	}
	return v, nil
}

// Parse reads one value from data using alloc, or the default allocator when
// alloc is nil.
func Parse(data []byte, alloc allocator.Allocator, opts ...Option) (*value.Value, error) {
	return New(alloc, opts...).Parse(data)
}

func ParseString(text string, alloc allocator.Allocator, opts ...Option) (*value.Value, error) {
	return New(alloc, opts...).Parse([]byte(text))
}

// Valid reports whether data holds exactly one well-formed JSON value.
func Valid(data []byte) bool {
	v, err := Parse(data, nil)
	v.Free()
	return err == nil
}

type parser struct {
	tok   tokenizer
	r     *Reader
	depth int
}

func (p *parser) next() (Token, error) {
	tok, err := p.tok.next()
	if err == nil && p.r.trace {
		level.Debug(p.r.cfg.logger).Log("msg", "token", "kind", tok.Kind, "offset", tok.Offset, "depth", p.depth)
	}
	return tok, err
}

func (p *parser) readValue() (*value.Value, error) {
	tok, err := p.tok.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenLeftBrace:
		return p.readObject()
	case TokenLeftBracket:
		return p.readArray()
	case TokenNull, TokenBool, TokenNumber, TokenString:
		if tok, err = p.next(); err != nil {
			return nil, err
		}
		return p.scalar(tok)
	default:
		return nil, syntaxError(tok.Offset, "unexpected "+tok.Kind.String()+", expected value")
	}
}

func (p *parser) scalar(tok Token) (*value.Value, error) {
	switch tok.Kind {
	case TokenBool:
		return value.Bool(tok.Bool), nil
	case TokenNumber:
		return value.Number(tok.Number), nil
	case TokenString:
		s, err := str.NewFromBytes(tok.Data, p.r.alloc)
		if err != nil {
			return nil, err
		}
		return value.FromStr(s), nil
	default:
		return value.Null(), nil
	}
}

func (p *parser) enter(offset int) error {
	p.depth++
	if limit := p.r.cfg.maxDepth; limit > 0 && p.depth > limit {
		return &ParseError{Offset: offset, Msg: "maximum nesting depth exceeded", Err: ErrTooDeep}
	}
	return nil
}

// readObject parses '{' (string ':' value (',' string ':' value)*)? '}'.
func (p *parser) readObject() (*value.Value, error) {
	open, err := p.next()
	if err != nil {
		return nil, err
	}
	if err := p.enter(open.Offset); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()

	obj, err := value.NewObject(p.r.alloc, p.r.cfg.objectOpts...)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*value.Value, error) {
		obj.Free()
		return nil, err
	}

	commaPending := false
	for {
		tok, err := p.next()
		if err != nil {
			return fail(err)
		}
		switch {
		case tok.Kind == TokenRightBrace:
			if commaPending {
				return fail(syntaxError(tok.Offset, "trailing comma in object"))
			}
			return value.FromObject(obj), nil
		case tok.Kind == TokenComma:
			if commaPending || obj.Len() == 0 {
				return fail(syntaxError(tok.Offset, "unexpected ',' in object"))
			}
			commaPending = true
			continue
		case tok.Kind != TokenString:
			return fail(syntaxError(tok.Offset, "unexpected "+tok.Kind.String()+", expected object key"))
		case obj.Len() > 0 && !commaPending:
			return fail(syntaxError(tok.Offset, "expected ',' or '}' after object member"))
		}

		key, err := str.NewFromBytes(tok.Data, p.r.alloc)
		if err != nil {
			return fail(err)
		}
		if tok, err = p.next(); err != nil || tok.Kind != TokenColon {
			key.Free()
			if err == nil {
				err = syntaxError(tok.Offset, "expected ':' after object key")
			}
			return fail(err)
		}
		v, err := p.readValue()
		if err != nil {
			key.Free()
			return fail(err)
		}
		obj.Adopt(key, v)
		commaPending = false
	}
}

// readArray parses '[' (value (',' value)*)? ']'.
func (p *parser) readArray() (*value.Value, error) {
	open, err := p.next()
	if err != nil {
		return nil, err
	}
	if err := p.enter(open.Offset); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()

	arr, err := value.NewArray(p.r.alloc)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*value.Value, error) {
		arr.Free()
		return nil, err
	}

	commaPending := false
	for {
		tok, err := p.tok.peek()
		if err != nil {
			return fail(err)
		}
		switch {
		case tok.Kind == TokenRightBracket:
			if commaPending {
				return fail(syntaxError(tok.Offset, "trailing comma in array"))
			}
			if _, err := p.next(); err != nil {
				return fail(err)
			}
			return value.FromArray(arr), nil
		case tok.Kind == TokenComma:
			if commaPending || arr.Empty() {
				return fail(syntaxError(tok.Offset, "unexpected ',' in array"))
			}
			if _, err := p.next(); err != nil {
				return fail(err)
			}
			commaPending = true
			continue
		case !arr.Empty() && !commaPending:
			return fail(syntaxError(tok.Offset, "expected ',' or ']' after array element"))
		}

		v, err := p.readValue()
		if err != nil {
			return fail(err)
		}
		if err := arr.Push(v); err != nil {
			v.Free()
			return fail(err)
		}
		commaPending = false
	}
}
