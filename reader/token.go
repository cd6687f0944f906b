package reader

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/buffer"
)

type TokenKind uint8

const (
	TokenNull TokenKind = iota
	TokenNumber
	TokenString
	TokenBool
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenComma
	TokenColon
)

func (k TokenKind) String() string {
	switch k {
	case TokenNull:
		return "null"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenBool:
		return "bool"
	case TokenLeftBrace:
		return "'{'"
	case TokenRightBrace:
		return "'}'"
	case TokenLeftBracket:
		return "'['"
	case TokenRightBracket:
		return "']'"
	case TokenComma:
		return "','"
	case TokenColon:
		return "':'"
	default:
		return "unknown token"
	}
}

// Token is one lexical element. Data holds a string token's decoded payload;
// it aliases either the input or the tokenizer's scratch space and is only
// valid until the next token is read.
type Token struct {
	Kind   TokenKind
	Offset int
	Bool   bool
	Number float64
	Data   []byte
}

var punctuation = [256]TokenKind{
	'{': TokenLeftBrace,
	'}': TokenRightBrace,
	'[': TokenLeftBracket,
	']': TokenRightBracket,
	',': TokenComma,
	':': TokenColon,
}

const scratchSize = 256

type tokenizer struct {
	alloc   allocator.Allocator
	data    []byte
	pos     int
	scratch *buffer.Buffer
}

func (t *tokenizer) skipWhitespace() {
	for t.pos < len(t.data) {
		switch t.data[t.pos] {
		case ' ', '\t', '\n', '\r':
			t.pos++
		default:
			return
		}
	}
}

// peek reads the next token without moving the cursor.
func (t *tokenizer) peek() (Token, error) {
	saved := t.pos
	tok, err := t.next()
	t.pos = saved
	return tok, err
}

// next reads the next token and moves the cursor past it.
func (t *tokenizer) next() (Token, error) {
	t.skipWhitespace()
	if t.pos >= len(t.data) {
		return Token{}, syntaxError(t.pos, "unexpected end of input")
	}
	start := t.pos
	c := t.data[t.pos]
	switch {
	case c == '"':
		return t.readString()
	case c == '-' || (c >= '0' && c <= '9'):
		return t.readNumber()
	case c == 't':
		return t.readKeyword("true", Token{Kind: TokenBool, Bool: true, Offset: start})
	case c == 'f':
		return t.readKeyword("false", Token{Kind: TokenBool, Offset: start})
	case c == 'n':
		return t.readKeyword("null", Token{Kind: TokenNull, Offset: start})
	case punctuation[c] != TokenNull:
		t.pos++
		return Token{Kind: punctuation[c], Offset: start}, nil
	default:
		return Token{}, syntaxError(start, "invalid character "+strconv.QuoteRune(rune(c)))
	}
}

func (t *tokenizer) readKeyword(word string, tok Token) (Token, error) {
	if len(t.data)-t.pos < len(word) || string(t.data[t.pos:t.pos+len(word)]) != word {
		return Token{}, syntaxError(t.pos, "invalid literal, expected "+word)
	}
	t.pos += len(word)
	return tok, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// digits consumes a run of digits and reports how many there were.
func (t *tokenizer) digits() int {
	start := t.pos
	for t.pos < len(t.data) && isDigit(t.data[t.pos]) {
		t.pos++
	}
	return t.pos - start
}

func (t *tokenizer) readNumber() (Token, error) {
	start := t.pos
	if t.data[t.pos] == '-' {
		t.pos++
	}
	if t.digits() == 0 {
		return Token{}, syntaxError(t.pos, "invalid number, expected digit")
	}
	if t.pos < len(t.data) && t.data[t.pos] == '.' {
		t.pos++
		if t.digits() == 0 {
			return Token{}, syntaxError(t.pos, "invalid number, expected digit after '.'")
		}
	}
	if t.pos < len(t.data) && (t.data[t.pos] == 'e' || t.data[t.pos] == 'E') {
		t.pos++
		if t.pos < len(t.data) && (t.data[t.pos] == '+' || t.data[t.pos] == '-') {
			t.pos++
		}
		if t.digits() == 0 {
			return Token{}, syntaxError(t.pos, "invalid number, expected digit in exponent")
		}
	}
	f, err := strconv.ParseFloat(string(t.data[start:t.pos]), 64)
	if err != nil {
		return Token{}, syntaxError(start, "number out of range")
	}
	return Token{Kind: TokenNumber, Number: f, Offset: start}, nil
}

func (t *tokenizer) readString() (Token, error) {
	start := t.pos
	t.pos++
	from := t.pos
	for t.pos < len(t.data) {
		switch t.data[t.pos] {
		case '"':
			t.pos++
			return Token{Kind: TokenString, Data: t.data[from : t.pos-1], Offset: start}, nil
		case '\\':
			return t.readEscapedString(start, from)
		}
		t.pos++
	}
	return Token{}, syntaxError(start, "unterminated string")
}

// readEscapedString decodes the rest of a string into the scratch buffer
// once the first backslash has been seen.
func (t *tokenizer) readEscapedString(start, from int) (Token, error) {
	if t.scratch == nil {
		scratch, err := buffer.New(scratchSize, t.alloc)
		if err != nil {
			return Token{}, err
		}
		t.scratch = scratch
	}
	out := 0
	put := func(b ...byte) error {
		if err := t.scratch.Grow(out + len(b)); err != nil {
			return err
		}
		out += copy(t.scratch.Bytes()[out:], b)
		return nil
	}
	if err := put(t.data[from:t.pos]...); err != nil {
		return Token{}, err
	}
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		if c == '"' {
			t.pos++
			return Token{Kind: TokenString, Data: t.scratch.Bytes()[:out], Offset: start}, nil
		}
		if c != '\\' {
			if err := put(c); err != nil {
				return Token{}, err
			}
			t.pos++
			continue
		}
		t.pos++
		if t.pos >= len(t.data) {
			break
		}
		var err error
		switch esc := t.data[t.pos]; esc {
		case '"', '\\', '/':
			err = put(esc)
		case 'b':
			err = put('\b')
		case 'f':
			err = put('\f')
		case 'n':
			err = put('\n')
		case 'r':
			err = put('\r')
		case 't':
			err = put('\t')
		case 'u':
			var r rune
			if r, err = t.readUnicodeEscape(); err == nil {
				var enc [utf8.UTFMax]byte
				err = put(enc[:utf8.EncodeRune(enc[:], r)]...)
			}
		default:
			err = syntaxError(t.pos-1, "invalid escape "+strconv.Quote(`\`+string(esc)))
		}
		if err != nil {
			return Token{}, err
		}
		t.pos++
	}
	return Token{}, syntaxError(start, "unterminated string")
}

// readUnicodeEscape decodes \uXXXX, joining a following low surrogate when
// the first one is a high surrogate. The cursor is left on the last hex
// digit consumed.
func (t *tokenizer) readUnicodeEscape() (rune, error) {
	r, err := t.hex4(t.pos + 1)
	if err != nil {
		return 0, err
	}
	t.pos += 4
	if !utf16.IsSurrogate(r) {
		return r, nil
	}
	if t.pos+2 < len(t.data) && t.data[t.pos+1] == '\\' && t.data[t.pos+2] == 'u' {
		if low, err := t.hex4(t.pos + 3); err == nil {
			if dec := utf16.DecodeRune(r, low); dec != utf8.RuneError {
				t.pos += 6
				return dec, nil
			}
		}
	}
	return utf8.RuneError, nil
}

func (t *tokenizer) hex4(at int) (rune, error) {
	if at+4 > len(t.data) {
		return 0, syntaxError(at-2, "incomplete unicode escape")
	}
	v, err := strconv.ParseUint(string(t.data[at:at+4]), 16, 16)
	if err != nil {
		return 0, syntaxError(at-2, "invalid unicode escape")
	}
	return rune(v), nil
}
