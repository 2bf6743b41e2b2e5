package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF reads every page in order. Pages whose text cannot be decoded
// contribute an empty string so one bad page never loses the rest.
func extractPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", corrupt(FormatPDF, fmt.Errorf("panic: %v", r))
		}
	}()

	if len(data) == 0 {
		return "", corrupt(FormatPDF, fmt.Errorf("empty payload"))
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", corrupt(FormatPDF, err)
	}

	total := reader.NumPage()
	pages := make([]string, 0, total)
	failed := 0
	for i := 1; i <= total; i++ {
		content, ok := pageText(reader, i)
		if !ok {
			failed++
		}
		pages = append(pages, content)
	}

	text = strings.Join(pages, "\n")
	if failed > 0 {
		return text, corrupt(FormatPDF, fmt.Errorf("%d of %d pages unreadable", failed, total))
	}
	return text, nil
}

func pageText(reader *pdf.Reader, num int) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text, ok = "", false
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", true
	}

	content, err := page.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	// Text objects are separated by newlines, including one before the first.
	return strings.TrimSpace(content), true
}
