package str

import "io"

const hex = "0123456789abcdef"

// Format writes s to w as a quoted JSON string.
func (s *Str) Format(w io.Writer) error {
	return formatQuoted(w, s.Bytes())
}

// FormatRaw writes text to w as a quoted JSON string.
func FormatRaw(w io.Writer, text string) error {
	return formatQuoted(w, []byte(text))
}

func formatQuoted(w io.Writer, b []byte) error {
	if _, err := w.Write(quote); err != nil {
		return err
	}
	start := 0
	for i, c := range b {
		if c != '\\' && c != '"' && c >= 0x20 {
			continue
		}
		if start < i {
			if _, err := w.Write(b[start:i]); err != nil {
				return err
			}
		}
		if _, err := w.Write(escape(c)); err != nil {
			return err
		}
		start = i + 1
	}
	if start < len(b) {
		if _, err := w.Write(b[start:]); err != nil {
			return err
		}
	}
	_, err := w.Write(quote)
	return err
}

var quote = []byte{'"'}

func escape(c byte) []byte {
	switch c {
	case '\\', '"':
		return []byte{'\\', c}
	case '\n':
		return []byte(`\n`)
	case '\r':
		return []byte(`\r`)
	case '\t':
		return []byte(`\t`)
	default:
		return []byte{'\\', 'u', '0', '0', hex[c>>4], hex[c&0xF]}
	}
}
