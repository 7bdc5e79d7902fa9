// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

func init() {
	// Keep pdfcpu from creating a config directory under the user's home.
	api.DisableConfigDir()
}

// readPDF extracts text page by page with pdfcpu. Pages without text are
// skipped; the remaining pages are joined with newlines.
func readPDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return "", fmt.Errorf("pdfcpu read: %w", err)
	}

	pages := make([]string, 0, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		text := pageText(ctx, pageNr)
		if text == "" {
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

// pageText returns the text shown on one page, or "" when the page has no
// content or its content cannot be decoded.
func pageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return contentText(data, pageFonts(ctx, pageNr))
}

// contentText pulls the shown text out of a page content stream. String
// operands of Tj, TJ, ' and " are emitted; T*, ', " and vertical moves by
// Td, TD or Tm start a new line. Strings are decoded with the font selected
// by the last Tf, looked up by resource name in fonts.
func contentText(data []byte, fonts map[string]*fontDecoder) string {
	s := &streamScanner{data: data}

	var (
		out      strings.Builder
		strs     []string
		nums     []float64
		lastY    float64
		haveY    bool
		lastName string
		font     *fontDecoder
	)

	newline := func() {
		if out.Len() > 0 {
			out.WriteByte('\n')
		}
	}

	for {
		tok, kind := s.next()
		switch kind {
		case tokEOF:
			return cleanText(out.String())

		case tokString:
			strs = append(strs, font.decode(tok))

		case tokName:
			lastName = tok

		case tokNumber:
			n, _ := strconv.ParseFloat(tok, 64)
			nums = append(nums, n)
			// Large negative TJ adjustments separate words.
			if s.arrayDepth > 0 && n <= -250 {
				strs = append(strs, " ")
			}

		case tokOperator:
			switch tok {
			case "Tf":
				font = fonts[lastName]
			case "Tj", "TJ":
				out.WriteString(strings.Join(strs, ""))
			case "'", `"`:
				newline()
				out.WriteString(strings.Join(strs, ""))
			case "T*":
				newline()
			case "Td", "TD":
				if len(nums) >= 2 && nums[len(nums)-1] != 0 {
					newline()
				} else {
					out.WriteByte(' ')
				}
			case "Tm":
				if len(nums) >= 6 {
					y := nums[len(nums)-1]
					if haveY && y != lastY {
						newline()
					} else if haveY {
						out.WriteByte(' ')
					}
					lastY, haveY = y, true
				}
			case "ID":
				s.skipInlineImage()
			}
			strs = strs[:0]
			nums = nums[:0]
		}
	}
}

// cleanText collapses whitespace within lines, drops non-printable runes
// and removes empty lines.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Map(func(r rune) rune {
			switch {
			case unicode.IsSpace(r):
				return ' '
			case unicode.IsPrint(r):
				return r
			default:
				return -1
			}
		}, line)
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokString
	tokNumber
	tokOperator
	tokName
	tokOther
)

// streamScanner tokenizes a PDF content stream.
type streamScanner struct {
	data       []byte
	pos        int
	arrayDepth int
}

func (s *streamScanner) next() (string, tokenKind) {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case isPDFSpace(c):
			s.pos++

		case c == '%':
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}

		case c == '(':
			return s.literal(), tokString

		case c == '<':
			if s.pos+1 < len(s.data) && s.data[s.pos+1] == '<' {
				s.pos += 2
				return "<<", tokOther
			}
			return s.hex(), tokString

		case c == '>':
			s.pos++
			if s.pos < len(s.data) && s.data[s.pos] == '>' {
				s.pos++
			}
			return ">>", tokOther

		case c == '[':
			s.pos++
			s.arrayDepth++
			return "[", tokOther

		case c == ']':
			s.pos++
			if s.arrayDepth > 0 {
				s.arrayDepth--
			}
			return "]", tokOther

		case c == '/':
			s.pos++
			start := s.pos
			for s.pos < len(s.data) && isRegular(s.data[s.pos]) {
				s.pos++
			}
			return string(s.data[start:s.pos]), tokName

		default:
			start := s.pos
			for s.pos < len(s.data) && isRegular(s.data[s.pos]) {
				s.pos++
			}
			if s.pos == start {
				// Stray delimiter such as an unmatched ')' or a brace.
				s.pos++
				continue
			}
			tok := string(s.data[start:s.pos])
			if isNumber(tok) {
				return tok, tokNumber
			}
			return tok, tokOperator
		}
	}
	return "", tokEOF
}

// literal reads a parenthesised string starting at s.pos and returns its
// raw bytes.
func (s *streamScanner) literal() string {
	s.pos++
	depth := 1
	var buf []byte

	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++

		switch c {
		case '\\':
			if s.pos >= len(s.data) {
				return string(buf)
			}
			e := s.data[s.pos]
			s.pos++
			switch e {
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case '\r':
				if s.pos < len(s.data) && s.data[s.pos] == '\n' {
					s.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for i := 0; i < 2 && s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '7'; i++ {
						v = v*8 + int(s.data[s.pos]-'0')
						s.pos++
					}
					buf = append(buf, byte(v))
				} else {
					buf = append(buf, e)
				}
			}

		case '(':
			depth++
			buf = append(buf, c)

		case ')':
			depth--
			if depth == 0 {
				return string(buf)
			}
			buf = append(buf, c)

		default:
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// hex reads a <...> hex string starting at s.pos and returns its raw bytes.
func (s *streamScanner) hex() string {
	s.pos++
	var digits []byte
	for s.pos < len(s.data) && s.data[s.pos] != '>' {
		if isHexDigit(s.data[s.pos]) {
			digits = append(digits, s.data[s.pos])
		}
		s.pos++
	}
	s.pos++
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	buf := make([]byte, len(digits)/2)
	for i := range buf {
		v, _ := strconv.ParseUint(string(digits[2*i:2*i+2]), 16, 8)
		buf[i] = byte(v)
	}
	return string(buf)
}

// skipInlineImage moves past inline image data up to the EI operator.
func (s *streamScanner) skipInlineImage() {
	from := s.pos
	for {
		idx := bytes.Index(s.data[from:], []byte("EI"))
		if idx < 0 {
			s.pos = len(s.data)
			return
		}
		end := from + idx
		before := end == 0 || isPDFSpace(s.data[end-1])
		after := end+2 >= len(s.data) || isPDFSpace(s.data[end+2])
		if before && after {
			s.pos = end + 2
			return
		}
		from = end + 2
	}
}

// decodePDFBytes turns a string operand shown in a font without a
// ToUnicode map into text: UTF-16BE when it carries a byte order mark,
// Windows-1252 otherwise.
func decodePDFBytes(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		units := make([]uint16, 0, (len(b)-2)/2)
		for i := 2; i+1 < len(b); i += 2 {
			units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
		}
		return string(utf16.Decode(units))
	}

	var sb strings.Builder
	for _, c := range b {
		sb.WriteRune(charmap.Windows1252.DecodeByte(c))
	}
	return sb.String()
}

func isPDFSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isRegular(c byte) bool {
	if isPDFSpace(c) {
		return false
	}
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return false
	}
	return true
}

func isNumber(tok string) bool {
	switch tok[0] {
	case '+', '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		_, err := strconv.ParseFloat(tok, 64)
		return err == nil
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
