package payment

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	pdfLinesPerPage = 50
	pdfLeading      = 14
)

// buildSimplePDF lays out plain text lines on A4 pages with a monospaced font
// so the export columns stay aligned.
func buildSimplePDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payment statement"}
	}

	var pages [][]string
	for start := 0; start < len(lines); start += pdfLinesPerPage {
		end := start + pdfLinesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}

	// 1 catalog, 2 pages, 3 font, then a page and content object per page.
	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+i*2))
	}

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), len(pages)),
		"3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>\nendobj\n",
	}

	for i, page := range pages {
		pageObj := 4 + i*2
		contentObj := pageObj + 1

		var content strings.Builder
		content.WriteString(fmt.Sprintf("BT\n/F1 9 Tf\n%d TL\n40 800 Td\n", pdfLeading))
		for j, line := range page {
			if j == 0 {
				content.WriteString(fmt.Sprintf("(%s) Tj\n", pdfEscape(line)))
				continue
			}
			content.WriteString(fmt.Sprintf("T* (%s) Tj\n", pdfEscape(line)))
		}
		content.WriteString("ET")
		stream := content.String()

		objects = append(objects,
			fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n", pageObj, contentObj),
			fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", contentObj, len(stream), stream),
		)
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
