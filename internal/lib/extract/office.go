package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func fromDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx archive: %w", err)
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("docx archive is missing word/document.xml")
	}

	content, err := readZipPart(document)
	if err != nil {
		return "", err
	}

	paragraphs, err := collectParagraphs(content, "p", "t")
	if err != nil {
		return "", fmt.Errorf("parsing docx body: %w", err)
	}

	return strings.Join(paragraphs, "\n\n"), nil
}

func fromPPTX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pptx archive: %w", err)
	}

	type slidePart struct {
		num  int
		file *zip.File
	}

	var slides []slidePart
	for _, f := range archive.File {
		m := slidePartRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}

		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slidePart{num: num, file: f})
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var parts []string
	for _, slide := range slides {
		content, err := readZipPart(slide.file)
		if err != nil {
			return "", err
		}

		runs, err := collectText(content, "t")
		if err != nil {
			return "", fmt.Errorf("parsing slide %d: %w", slide.num, err)
		}
		if len(runs) == 0 {
			continue
		}

		parts = append(parts, fmt.Sprintf("Slide %d:\n%s", slide.num, strings.Join(runs, "\n")))
	}

	return strings.Join(parts, "\n\n"), nil
}

func readZipPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening archive part %s: %w", f.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading archive part %s: %w", f.Name, err)
	}
	return content, nil
}

// collectParagraphs walks an OOXML part and groups text runs by their
// enclosing paragraph element. Empty paragraphs are dropped.
func collectParagraphs(content []byte, paragraphElem, textElem string) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == textElem {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case textElem:
				inText = false
			case paragraphElem:
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	// Text outside a closing paragraph tag still counts.
	if text := strings.TrimSpace(current.String()); text != "" {
		paragraphs = append(paragraphs, text)
	}

	return paragraphs, nil
}

// collectText gathers the contents of every textElem element in an
// OOXML part, one entry per non-empty run.
func collectText(content []byte, textElem string) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		runs    []string
		current strings.Builder
		inText  bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == textElem {
				inText = true
				current.Reset()
			}
		case xml.EndElement:
			if t.Name.Local == textElem {
				inText = false
				if text := strings.TrimSpace(current.String()); text != "" {
					runs = append(runs, text)
				}
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return runs, nil
}
