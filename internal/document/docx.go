package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", corrupt(FormatDOCX, errors.New("empty payload"))
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", corrupt(FormatDOCX, err)
	}
	defer doc.Close()

	paras, err := paragraphs(doc.Editable().GetContent())
	text := strings.Join(paras, "\n")
	if err != nil {
		return text, corrupt(FormatDOCX, err)
	}
	return text, nil
}

// paragraphs walks WordprocessingML and returns the text of each w:p element
// in document order. On a decode error the paragraphs read so far are returned.
func paragraphs(documentXML string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		result  []string
		current strings.Builder
		inText  bool
		inPara  bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if inPara {
				result = append(result, current.String())
			}
			return result, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = true
			case "tab":
				current.WriteString("\t")
			case "br", "cr":
				current.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inPara {
					result = append(result, current.String())
				}
				inPara = false
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return result, nil
}
