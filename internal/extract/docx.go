package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// readDocx returns the text of every top-level paragraph in the document
// body, one paragraph per line. Empty paragraphs produce empty lines.
// Paragraphs nested in tables or text boxes are not included.
func readDocx(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open package: %w", err)
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == docxBody {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("%s not found in package", docxBody)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", docxBody, err)
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs, "\n"), nil
}

// hiddenContent lists elements inside a paragraph whose descendants are not
// part of the paragraph's own text: properties (tab stops live there),
// drawings and text boxes, and alternate-content wrappers that repeat them.
var hiddenContent = map[string]bool{
	"pPr":              true,
	"rPr":              true,
	"drawing":          true,
	"pict":             true,
	"object":           true,
	"txbxContent":      true,
	"AlternateContent": true,
}

// docxParagraphs walks document.xml and collects the visible text of each
// w:p element whose parent is w:body.
func docxParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		stack      []string
		inPara     bool
		hidden     int
	)

	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", docxBody, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			switch {
			case name == "p" && parent() == "body":
				inPara = true
				hidden = 0
				current.Reset()
			case inPara && (hidden > 0 || hiddenContent[name]):
				if hiddenContent[name] {
					hidden++
				}
			case inPara && name == "tab":
				current.WriteByte('\t')
			case inPara && (name == "br" || name == "cr"):
				current.WriteByte('\n')
			case inPara && name == "noBreakHyphen":
				current.WriteByte('-')
			}
			stack = append(stack, name)

		case xml.CharData:
			if inPara && hidden == 0 && parent() == "t" {
				current.Write(t)
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if inPara && hidden > 0 && hiddenContent[t.Name.Local] {
				hidden--
			}
			if t.Name.Local == "p" && inPara && parent() == "body" {
				inPara = false
				paragraphs = append(paragraphs, current.String())
			}
		}
	}

	return paragraphs, nil
}
