// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePDF writes a minimal single-page PDF showing text in Helvetica
func writePDF(t *testing.T, text string) string {
	t.Helper()

	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

func TestLoadStdin(t *testing.T) {
	for _, source := range []string{"", StdinName} {
		content, err := Load(source, strings.NewReader("Project Orion costs $5"))

		require.NoError(t, err)
		assert.Equal(t, "stdin", content.Kind)
		assert.Equal(t, "Project Orion costs $5", content.Text)
	}

	_, err := Load(StdinName, nil)
	assert.Error(t, err)
}

func TestLoadTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("Dose: 5 mg"), 0600))

	content, err := Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, "text", content.Kind)
	assert.Equal(t, "Dose: 5 mg", content.Text)
	assert.Equal(t, path, content.Source)
}

func TestLoadRejectsBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0600))

	_, err := Load(path, nil)
	assert.ErrorContains(t, err, "not valid UTF-8")

	_, err = Load(StdinName, bytes.NewReader([]byte{0xc3}))
	assert.ErrorContains(t, err, "not valid UTF-8")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtractPDF(t *testing.T) {
	path := writePDF(t, "Hello Orion 42")

	content, err := Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, "pdf", content.Kind)
	assert.Equal(t, 1, content.PageCount)
	assert.Contains(t, content.Text, "Hello Orion 42")
}

func TestExtractPDFInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0600))

	_, err := ExtractPDF(path)
	assert.ErrorContains(t, err, "error opening PDF")
}
