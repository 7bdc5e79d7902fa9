// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

// fontDecoder maps the string operands shown in one font to text.
type fontDecoder struct {
	// codeLen is the byte width of a character code: 2 for composite
	// (Type0) fonts, 1 otherwise.
	codeLen int

	// cmap is the font's ToUnicode map, nil when the font has none.
	cmap *toUnicodeMap
}

// pageFonts resolves the fonts in the page's resource dictionary, keyed by
// resource name (the operand of Tf). Fonts that cannot be read are left out
// and their text falls back to decodePDFBytes.
func pageFonts(ctx *model.Context, pageNr int) map[string]*fontDecoder {
	_, _, attrs, err := ctx.PageDict(pageNr, false)
	if err != nil || attrs == nil || attrs.Resources == nil {
		return nil
	}
	obj, found := attrs.Resources.Find("Font")
	if !found {
		return nil
	}
	fontDict, err := ctx.DereferenceDict(obj)
	if err != nil || fontDict == nil {
		return nil
	}

	fonts := make(map[string]*fontDecoder, len(fontDict))
	for name, o := range fontDict {
		fd, err := ctx.DereferenceDict(o)
		if err != nil || fd == nil {
			continue
		}

		dec := &fontDecoder{codeLen: 1}
		if subtype := fd.NameEntry("Subtype"); subtype != nil && *subtype == "Type0" {
			dec.codeLen = 2
		}
		if tu, ok := fd.Find("ToUnicode"); ok {
			sd, _, err := ctx.DereferenceStreamDict(tu)
			if err == nil && sd != nil && sd.Decode() == nil {
				dec.cmap = parseToUnicode(sd.Content)
			}
		}
		fonts[name] = dec
	}
	return fonts
}

// decode returns the text for raw string bytes. A nil decoder means the
// font is unknown.
func (f *fontDecoder) decode(raw string) string {
	if f == nil {
		return decodePDFBytes([]byte(raw))
	}
	if f.cmap == nil {
		if f.codeLen == 1 {
			return decodePDFBytes([]byte(raw))
		}
		// Composite font codes are glyph IDs; without a map they carry no text.
		return ""
	}

	n := f.cmap.codeLen
	if n == 0 {
		n = f.codeLen
	}
	var sb strings.Builder
	for i := 0; i+n <= len(raw); i += n {
		code := codeValue(raw[i : i+n])
		if text, ok := f.cmap.lookup(code); ok {
			sb.WriteString(text)
		} else if n == 1 {
			sb.WriteRune(charmap.Windows1252.DecodeByte(raw[i]))
		}
	}
	return sb.String()
}

// toUnicodeMap is a parsed ToUnicode CMap.
type toUnicodeMap struct {
	// codeLen is the byte width from begincodespacerange, 0 if absent.
	codeLen int
	chars   map[uint32]string
	ranges  []bfRange
}

// bfRange maps lo..hi either to consecutive code points starting at start
// or, when dsts is set, to one destination per code.
type bfRange struct {
	lo, hi uint32
	start  []uint16
	dsts   []string
}

func (m *toUnicodeMap) lookup(code uint32) (string, bool) {
	if text, ok := m.chars[code]; ok {
		return text, true
	}
	for _, r := range m.ranges {
		if code < r.lo || code > r.hi {
			continue
		}
		off := code - r.lo
		if r.dsts != nil {
			if int(off) < len(r.dsts) {
				return r.dsts[off], true
			}
			return "", false
		}
		if len(r.start) == 0 {
			return "", false
		}
		units := append([]uint16(nil), r.start...)
		units[len(units)-1] += uint16(off)
		return string(utf16.Decode(units)), true
	}
	return "", false
}

// cmapOperand is a string or an array of strings inside a CMap section.
type cmapOperand struct {
	str string
	arr []string
}

// parseToUnicode reads the codespace, bfchar and bfrange sections of a
// ToUnicode CMap. Unknown operators are ignored.
func parseToUnicode(data []byte) *toUnicodeMap {
	m := &toUnicodeMap{chars: make(map[uint32]string)}
	s := &streamScanner{data: data}

	var (
		operands []cmapOperand
		arr      []string
		inArray  bool
	)

	for {
		tok, kind := s.next()
		switch kind {
		case tokEOF:
			return m

		case tokString:
			if inArray {
				arr = append(arr, tok)
			} else {
				operands = append(operands, cmapOperand{str: tok})
			}

		case tokOther:
			switch tok {
			case "[":
				inArray, arr = true, nil
			case "]":
				if inArray {
					operands = append(operands, cmapOperand{arr: arr})
				}
				inArray = false
			}

		case tokOperator:
			switch tok {
			case "endcodespacerange":
				if m.codeLen == 0 && len(operands) > 0 {
					m.codeLen = len(operands[0].str)
				}
			case "endbfchar":
				for i := 0; i+1 < len(operands); i += 2 {
					m.chars[codeValue(operands[i].str)] = utf16BE(operands[i+1].str)
				}
			case "endbfrange":
				for i := 0; i+2 < len(operands); i += 3 {
					r := bfRange{lo: codeValue(operands[i].str), hi: codeValue(operands[i+1].str)}
					if dst := operands[i+2]; dst.arr != nil {
						r.dsts = make([]string, len(dst.arr))
						for j, d := range dst.arr {
							r.dsts[j] = utf16BE(d)
						}
					} else {
						r.start = utf16Units(dst.str)
					}
					m.ranges = append(m.ranges, r)
				}
			}
			operands = operands[:0]
		}
	}
}

// codeValue reads raw bytes as a big-endian character code.
func codeValue(raw string) uint32 {
	var v uint32
	for i := 0; i < len(raw) && i < 4; i++ {
		v = v<<8 | uint32(raw[i])
	}
	return v
}

func utf16Units(raw string) []uint16 {
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		units = append(units, uint16(raw[i])<<8|uint16(raw[i+1]))
	}
	return units
}

func utf16BE(raw string) string {
	return string(utf16.Decode(utf16Units(raw)))
}
