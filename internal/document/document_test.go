package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/nextstep/internal/document/documenttest"
)

const documentXMLTemplate = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>%s</w:body>
</w:document>`

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": fmt.Sprintf(documentXMLTemplate, body),
	}

	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"resume.pdf":    FormatPDF,
		"RESUME.PDF":    FormatPDF,
		"cv.docx":       FormatDOCX,
		"cv.doc":        FormatDOCX,
		"notes.txt":     FormatText,
		"no-extension":  FormatText,
		"archive.pdf.x": FormatText,
	}

	for name, want := range tests {
		assert.Equal(t, want, FormatOf(name), name)
	}
}

func TestExtractPlainText(t *testing.T) {
	text, err := Extract("resume.txt", []byte("Contact: foo@bar.com. Skills: Python, React."))
	require.NoError(t, err)
	assert.Equal(t, "Contact: foo@bar.com. Skills: Python, React.", text)
}

func TestExtractPlainTextDropsInvalidBytes(t *testing.T) {
	text, err := Extract("resume", []byte("Py\xffthon\xfe dev"))
	require.NoError(t, err)
	assert.Equal(t, "Python dev", text)
}

func TestExtractPDFDegradesOnBadInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "not a pdf", data: []byte("plain text pretending to be a pdf")},
		{name: "truncated header", data: []byte("%PDF-1.4\n1 0 obj\n<<")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Extract("resume.pdf", tt.data)
			assert.Equal(t, "", text)
			assert.ErrorIs(t, err, ErrCorruptDocument)
		})
	}
}

func TestExtractPDF(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{name: "blank page", pages: []string{""}, want: ""},
		{name: "two text pages", pages: []string{"p1", "p2"}, want: "p1\np2"},
		{name: "blank page in the middle", pages: []string{"p1", "", "p3"}, want: "p1\n\np3"},
		{name: "parentheses in text", pages: []string{"Go (Golang)"}, want: "Go (Golang)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Extract("resume.pdf", documenttest.PDF(tt.pages...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestExtractDOCXParagraphs(t *testing.T) {
	body := `<w:p><w:r><w:t>Ada Lovelace</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Skills: </w:t></w:r><w:r><w:t>Python, SQL</w:t></w:r></w:p>` +
		`<w:p></w:p>` +
		`<w:p><w:r><w:t>Analyst</w:t><w:tab/><w:t>2019</w:t></w:r></w:p>`

	text, err := Extract("cv.docx", buildDOCX(t, body))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace\nSkills: Python, SQL\n\nAnalyst\t2019", text)
}

func TestExtractDOCXDegradesOnBadInput(t *testing.T) {
	text, err := Extract("cv.docx", []byte("not a zip archive"))
	assert.Equal(t, "", text)
	assert.ErrorIs(t, err, ErrCorruptDocument)

	text, err = Extract("cv.doc", nil)
	assert.Equal(t, "", text)
	assert.ErrorIs(t, err, ErrCorruptDocument)
}

func TestParagraphsKeepsTextReadBeforeDecodeError(t *testing.T) {
	paras, err := paragraphs(`<w:document xmlns:w="x"><w:body><w:p><w:r><w:t>first</w:t></w:r></w:p><w:p><w:r><w:t>sec</w:t></w:r>`)
	require.Error(t, err)
	assert.Equal(t, []string{"first", "sec"}, paras)
}
