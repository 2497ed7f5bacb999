package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxText reads word/document.xml out of the DOCX zip container and
// collects the text runs. Paragraph boundaries become newlines.
func docxText(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx failed: %w", err)
	}
	defer archive.Close()

	var document *zip.File
	for _, file := range archive.File {
		if file.Name == "word/document.xml" {
			document = file
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("docx has no word/document.xml")
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("open docx document part failed: %w", err)
	}
	defer rc.Close()

	var out strings.Builder
	decoder := xml.NewDecoder(rc)
	inTextRun := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse docx xml failed: %w", err)
		}

		switch el := token.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inTextRun = false
			case "p":
				out.WriteString("\n")
			}
		case xml.CharData:
			if inTextRun {
				out.Write(el)
			}
		}
	}
	return out.String(), nil
}
