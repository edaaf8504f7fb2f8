package reporting

import (
	"bytes"
	"fmt"
	"strings"
)

// PDF layout constants for a US-letter page with fixed-pitch lines.
// There is no wrapping, pagination, or font measurement; an overlong line
// is clipped by the viewer, not here.
const (
	pdfPageWidth  = 612
	pdfPageHeight = 792
	pdfFontSize   = 12
	pdfLineHeight = 14
	pdfStartY     = 760
	pdfMarginX    = 50
)

// pdfEscape escapes the string-literal delimiters of the PDF text
// operator. Backslash must go first.
var pdfEscape = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// WritePDF builds a minimal, valid single-page PDF showing the given
// lines as left-aligned Helvetica text. The document holds exactly five
// indirect objects (Catalog, Pages, Page, Font, Contents) plus the
// implicit free zeroth xref entry, and is fully deterministic: identical
// lines always produce identical bytes. Anything time-dependent, such as
// a "generated at" stamp, must arrive as one of the lines.
//
// The cross-reference table is produced in two passes: each object is
// appended to the output while its start offset is recorded, then the
// xref section is emitted from the recorded offsets and startxref points
// at the first byte of the xref keyword.
func WritePDF(lines []string) []byte {
	ops := make([]string, len(lines))
	for i, line := range lines {
		ops[i] = fmt.Sprintf("1 0 0 1 %d %d Tm (%s) Tj", pdfMarginX, pdfStartY-i*pdfLineHeight, pdfEscape.Replace(line))
	}
	stream := []byte(fmt.Sprintf("BT /F1 %d Tf %s ET", pdfFontSize, strings.Join(ops, " ")))

	pieces := [][]byte{
		[]byte("%PDF-1.4\n"),
		[]byte("1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj\n"),
		[]byte("2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj\n"),
		[]byte(fmt.Sprintf("3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >> endobj\n", pdfPageWidth, pdfPageHeight)),
		[]byte("4 0 obj << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> endobj\n"),
		append(append([]byte(fmt.Sprintf("5 0 obj << /Length %d >> stream\n", len(stream))), stream...), []byte("\nendstream endobj\n")...),
	}

	var out bytes.Buffer
	offsets := make([]int, len(pieces))
	for i, p := range pieces {
		offsets[i] = out.Len()
		out.Write(p)
	}

	xrefPos := out.Len()
	out.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		fmt.Fprintf(&out, "%010d 00000 n \n", offsets[i])
	}
	out.WriteString("trailer << /Size 6 /Root 1 0 R >>\nstartxref\n")
	fmt.Fprintf(&out, "%d", xrefPos)
	out.WriteString("\n%%EOF")

	return out.Bytes()
}
