// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract loads the text to sanitize or restore from files, PDFs or
// standard input.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// StdinName is the input name that selects standard input
const StdinName = "-"

// MaxPDFPages bounds how many pages of a PDF are read
const MaxPDFPages = 200

// Content is the text loaded from one input
type Content struct {
	Source    string
	Kind      string // "stdin", "text" or "pdf"
	Text      string
	PageCount int
}

// Load reads the input named by source. An empty source or "-" reads stdin;
// a .pdf file has its text extracted; anything else is read as UTF-8 text.
func Load(source string, stdin io.Reader) (*Content, error) {
	if source == "" || source == StdinName {
		return readStdin(stdin)
	}
	if strings.EqualFold(filepath.Ext(source), ".pdf") {
		return ExtractPDF(source)
	}
	return readTextFile(source)
}

func readStdin(stdin io.Reader) (*Content, error) {
	if stdin == nil {
		return nil, fmt.Errorf("no standard input available")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("error reading standard input: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("standard input is not valid UTF-8 text")
	}
	return &Content{Source: StdinName, Kind: "stdin", Text: string(data)}, nil
}

func readTextFile(path string) (*Content, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s is not valid UTF-8 text", path)
	}
	return &Content{Source: path, Kind: "text", Text: string(data)}, nil
}

// ExtractPDF extracts the plain text of a PDF document page by page using
// ledongthuc/pdf. Pages that cannot be decoded are skipped.
func ExtractPDF(path string) (*Content, error) {
	content := &Content{Source: path, Kind: "pdf"}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	content.PageCount = r.NumPage()
	pages := content.PageCount
	if pages > MaxPDFPages {
		pages = MaxPDFPages
	}

	var buf bytes.Buffer
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(text)
	}

	content.Text = buf.String()
	return content, nil
}
