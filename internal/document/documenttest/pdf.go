// Package documenttest builds small valid documents for tests.
package documenttest

import (
	"bytes"
	"fmt"
	"strings"
)

// PDF returns a PDF with one page per entry. Each non-empty entry is drawn as
// a single line of Helvetica text; an empty entry yields a page without a
// content stream.
func PDF(pages ...string) []byte {
	// 1: catalog, 2: page tree, 3: font. Pages and content streams follow.
	objects := []string{"", "", "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"}
	add := func(body string) int {
		objects = append(objects, body)
		return len(objects)
	}

	kids := make([]string, 0, len(pages))
	for _, text := range pages {
		page := "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792]"
		if text != "" {
			content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escape(text))
			ref := add(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
			page += fmt.Sprintf(" /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R", ref)
		}
		kids = append(kids, fmt.Sprintf("%d 0 R", add(page+" >>")))
	}

	objects[0] = "<< /Type /Catalog /Pages 2 0 R >>"
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(kids))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`).Replace(s)
}
