package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFileType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
		wantErr  bool
	}{
		{"notes.pdf", "pdf", false},
		{"Lecture.PDF", "pdf", false},
		{"slides.pptx", "pptx", false},
		{"essay.docx", "docx", false},
		{"image.png", "", true},
		{"archive.zip", "", true},
		{"noextension", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ValidateFileType(tt.filename)
		if tt.wantErr {
			assert.Error(t, err, tt.filename)
			continue
		}
		require.NoError(t, err, tt.filename)
		assert.Equal(t, tt.want, got, tt.filename)
	}
}

func TestText_UnsupportedType(t *testing.T) {
	_, err := Text([]byte("data"), "png")
	assert.Error(t, err)
}

// buildArchive assembles an in-memory zip with the given parts.
func buildArchive(t *testing.T, parts map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range parts {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestText_DOCX(t *testing.T) {
	document := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph, </w:t></w:r><w:r><w:t>split over runs.</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	data := buildArchive(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   document,
	})

	text, err := Text(data, "docx")
	require.NoError(t, err)
	assert.Equal(t, "First paragraph, split over runs.\n\nSecond paragraph.", text)
}

func TestText_DOCX_MissingDocumentPart(t *testing.T) {
	data := buildArchive(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
	})

	_, err := Text(data, "docx")
	assert.Error(t, err)
}

func TestText_PPTX(t *testing.T) {
	slide := func(body string) string {
		return `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` + body + `</p:sld>`
	}

	data := buildArchive(t, map[string]string{
		"[Content_Types].xml":       `<Types/>`,
		"ppt/slides/slide2.xml":     slide(`<a:t>Closing remarks</a:t>`),
		"ppt/slides/slide1.xml":     slide(`<a:t>Intro title</a:t><a:t>Subtitle</a:t>`),
		"ppt/slides/slide10.xml":    slide(`<a:t>Appendix</a:t>`),
		"ppt/notesSlides/note1.xml": slide(`<a:t>speaker notes are skipped</a:t>`),
	})

	text, err := Text(data, "pptx")
	require.NoError(t, err)
	assert.Equal(t,
		"Slide 1:\nIntro title\nSubtitle\n\nSlide 2:\nClosing remarks\n\nSlide 10:\nAppendix",
		text)
}

func TestText_PPTX_EmptySlidesSkipped(t *testing.T) {
	data := buildArchive(t, map[string]string{
		"ppt/slides/slide1.xml": `<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"></p:sld>`,
	})

	text, err := Text(data, "pptx")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestText_PDF_Corrupt(t *testing.T) {
	_, err := Text([]byte("definitely not a pdf"), "pdf")
	assert.Error(t, err)
}

func TestText_NotAnArchive(t *testing.T) {
	_, err := Text([]byte("plain text"), "docx")
	assert.Error(t, err)

	_, err = Text([]byte("plain text"), "pptx")
	assert.Error(t, err)
}
