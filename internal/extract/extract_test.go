package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// --- fixtures ---

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// writeDocx creates a minimal .docx package whose body holds the given
// paragraph XML.
func writeDocx(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)

	w := zip.NewWriter(f)
	fw, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = fw.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

// writePDF creates a PDF with one page per entry; an empty entry produces
// a page with no text.
func writePDF(t *testing.T, dir, name string, pages []string) string {
	t.Helper()
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		pdf.AddPage()
		if text != "" {
			pdf.Cell(200, 14, text)
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

// writeUTF8PDF creates a single-page PDF set in an embedded TrueType font,
// so text is written as composite-font codes with a ToUnicode map.
func writeUTF8PDF(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddUTF8FontFromBytes("goregular", "", goregular.TTF)
	pdf.SetFont("goregular", "", 12)
	pdf.AddPage()
	for _, line := range lines {
		pdf.Cell(400, 14, line)
		pdf.Ln(16)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

// --- Detect ---

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want types.Format
	}{
		{"request.docx", types.FormatDocx},
		{"REQUEST.DOCX", types.FormatDocx},
		{"request.pdf", types.FormatPDF},
		{"Request.Pdf", types.FormatPDF},
		{"request.txt", types.FormatText},
		{"dir.v2/request.TXT", types.FormatText},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Detect(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_Unsupported(t *testing.T) {
	for _, path := range []string{"request.doc", "request.md", "request", "request.txt.bak"} {
		t.Run(path, func(t *testing.T) {
			_, err := Detect(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedFormat)

			var ufe *UnsupportedFormatError
			require.ErrorAs(t, err, &ufe)
			assert.Equal(t, strings.ToLower(filepath.Ext(path)), ufe.Ext)
		})
	}
}

// --- Extract ---

func TestExtract_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "request.rtf", []byte("{\\rtf1 hello}"))

	_, err := New(nil).Extract(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := New(nil).Extract(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtract_EmptyFiles(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"zero-byte txt", writeFile(t, dir, "empty.txt", nil)},
		{"zero-byte docx", writeFile(t, dir, "empty.docx", nil)},
		{"zero-byte pdf", writeFile(t, dir, "empty.pdf", nil)},
		{"docx without paragraphs", writeDocx(t, dir, "blank.docx", "")},
		{"pdf without text", writePDF(t, dir, "blank.pdf", []string{""})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(nil).Extract(tt.path)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestExtract_Text(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "request.txt", []byte("Solicităm un site pentru programari.\r\nMulțumim!\n"))

	got, err := New(nil).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Solicităm un site pentru programari.\nMulțumim!\n", got)
}

func TestExtract_TextInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "latin1.txt", []byte{'s', 'i', 't', 0xe9, 0xff})

	_, err := New(nil).Extract(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestExtract_Docx(t *testing.T) {
	dir := t.TempDir()
	body := `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Cerere ofertă</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Avem nevoie de un </w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>CRM</w:t></w:r></w:p>` +
		`<w:p/>` +
		`<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>table cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`<w:p><w:r><w:t>Final</w:t></w:r></w:p>`
	path := writeDocx(t, dir, "request.docx", body)

	got, err := New(nil).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Cerere ofertă\nAvem nevoie de un CRM\n\na\tb\nc\nFinal", got)
}

func TestExtract_DocxSkipsTextBoxesAndProperties(t *testing.T) {
	dir := t.TempDir()
	textBox := `<w:txbxContent><w:p><w:r><w:t>boxed</w:t></w:r></w:p></w:txbxContent>`
	body := `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
		`<w:r><w:t>Before</w:t></w:r>` +
		`<w:r><mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">` +
		`<mc:Choice Requires="wps"><w:drawing>` + textBox + `</w:drawing></mc:Choice>` +
		`<mc:Fallback><w:pict>` + textBox + `</w:pict></mc:Fallback>` +
		`</mc:AlternateContent></w:r>` +
		`<w:r><w:t xml:space="preserve"> after</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Next</w:t></w:r></w:p>`
	path := writeDocx(t, dir, "boxes.docx", body)

	got, err := New(nil).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Before after\nNext", got)
}

func TestExtract_DocxMissingBody(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	_, err = w.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	_, err = New(nil).Extract(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtract_DocxNotAZip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fake.docx", []byte("plain text pretending"))

	_, err := New(nil).Extract(path)
	assert.Error(t, err)
}

func TestExtract_PDFSkipsEmptyPages(t *testing.T) {
	dir := t.TempDir()
	path := writePDF(t, dir, "request.pdf", []string{"Alpha site", "", "Beta CRM"})

	got, err := New(nil).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Alpha site\nBeta CRM", got)
}

func TestExtract_PDFEmbeddedFontDiacritics(t *testing.T) {
	dir := t.TempDir()
	path := writeUTF8PDF(t, dir, "cerere.pdf", []string{
		"Gestiune și facturare pentru ținte",
		"Aplicație în România",
	})

	got, err := New(nil).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Gestiune și facturare pentru ținte\nAplicație în România", got)
}

func TestExtract_PDFCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.pdf", []byte("%PDF-1.4\nthis is not a pdf"))

	_, err := New(nil).Extract(path)
	assert.Error(t, err)
}

// --- content stream scanning ---

func TestContentText(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "single Tj",
			stream: "BT /F1 12 Tf 72 720 Td (Hello World) Tj ET",
			want:   "Hello World",
		},
		{
			name:   "lines via Td",
			stream: "BT\n72 720 Td\n(first) Tj\n0 -14 Td\n(second) Tj\nET",
			want:   "first\nsecond",
		},
		{
			name:   "TJ array with kerning gap",
			stream: "BT [(Hel) 20 (lo) -300 (there)] TJ ET",
			want:   "Hello there",
		},
		{
			name:   "escapes and nesting",
			stream: `BT (a \(b\) c\\d \101) Tj ET`,
			want:   `a (b) c\d A`,
		},
		{
			name:   "quote operator starts a line",
			stream: "BT (one) Tj (two) ' ET",
			want:   "one\ntwo",
		},
		{
			name:   "hex string",
			stream: "BT <48656C6C6F> Tj ET",
			want:   "Hello",
		},
		{
			name:   "utf16 hex string",
			stream: "BT <FEFF0219> Tj ET",
			want:   "ș",
		},
		{
			name:   "windows-1252 bytes",
			stream: `BT (caf\351) Tj ET`,
			want:   "café",
		},
		{
			name:   "no text operators",
			stream: "q 0 0 1 rg 10 10 100 100 re f Q",
			want:   "",
		},
		{
			name:   "inline image skipped",
			stream: "BI /W 1 /H 1 ID \x00(Tj)\xff EI BT (after) Tj ET",
			want:   "after",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentText([]byte(tt.stream), nil))
		})
	}
}

const identityCMap = `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CMapName /Adobe-Identity-UCS def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 beginbfrange
<0000> <FFFF> <0000>
endbfrange
endcmap
end
end`

func TestParseToUnicode(t *testing.T) {
	cm := parseToUnicode([]byte(`1 begincodespacerange <00> <FF> endcodespacerange
2 beginbfchar
<01> <0219>
<02> <0054021B>
endbfchar
2 beginbfrange
<10> <12> <0061>
<20> <21> [<0103> <00EE>]
endbfrange`))

	assert.Equal(t, 1, cm.codeLen)
	tests := []struct {
		code uint32
		want string
		ok   bool
	}{
		{0x01, "ș", true},
		{0x02, "Tț", true},
		{0x10, "a", true},
		{0x12, "c", true},
		{0x20, "ă", true},
		{0x21, "î", true},
		{0x13, "", false},
		{0x05, "", false},
	}
	for _, tt := range tests {
		got, ok := cm.lookup(tt.code)
		assert.Equal(t, tt.ok, ok, "code %#x", tt.code)
		assert.Equal(t, tt.want, got, "code %#x", tt.code)
	}

	identity := parseToUnicode([]byte(identityCMap))
	assert.Equal(t, 2, identity.codeLen)
	got, ok := identity.lookup(0x0219)
	assert.True(t, ok)
	assert.Equal(t, "ș", got)
}

func TestContentText_FontDecoding(t *testing.T) {
	fonts := map[string]*fontDecoder{
		"F1": {codeLen: 1},
		"F2": {codeLen: 2, cmap: parseToUnicode([]byte(identityCMap))},
		"F3": {codeLen: 2},
	}

	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "composite font through ToUnicode",
			stream: "BT /F2 12 Tf 72 720 Td <00530219> Tj ET",
			want:   "Sș",
		},
		{
			name:   "literal string in composite font",
			stream: `BT /F2 12 Tf (\000a\002\031) Tj ET`,
			want:   "aș",
		},
		{
			name:   "simple font stays windows-1252",
			stream: `BT /F1 12 Tf (caf\351) Tj ET`,
			want:   "café",
		},
		{
			name:   "font switch within a block",
			stream: "BT /F1 12 Tf (ab) Tj /F2 12 Tf <0103> Tj ET",
			want:   "abă",
		},
		{
			name:   "composite font without map emits nothing",
			stream: "BT /F3 12 Tf <00410042> Tj ET",
			want:   "",
		},
		{
			name:   "font selected outside BT persists",
			stream: "BT /F2 12 Tf ET BT 72 700 Td <0069> Tj ET",
			want:   "i",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentText([]byte(tt.stream), fonts))
		})
	}
}
