package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincomply/payguard/internal/core/domain"
)

// createTestDOCX creates a minimal valid DOCX file in memory.
func createTestDOCX(documentXML string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, _ := w.Create("[Content_Types].xml")
	contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))

	if documentXML != "" {
		doc, _ := w.Create("word/document.xml")
		doc.Write([]byte(documentXML))
	}

	w.Close()
	return buf.Bytes()
}

const paragraphsXML = `<?xml version="1.0"?>
<document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<body>
<p><r><t>Per transaction limit is 500 BHD.</t></r></p>
<p><r><t>Daily transfer limit is 1000 BHD.</t></r></p>
</body>
</document>`

const tableXML = `<?xml version="1.0"?>
<document>
<body>
<p><r><t>Limits table follows.</t></r></p>
<tbl>
<tr><tc><p><r><t>Per transaction</t></r></p></tc><tc><p><r><t>500 BHD</t></r></p></tc></tr>
<tr><tc><p><r><t>Daily</t></r></p></tc><tc><p><r><t>1000 BHD</t></r></p></tc></tr>
</tbl>
</body>
</document>`

func TestSupportedExtensions(t *testing.T) {
	n := New()
	assert.Equal(t, []string{".docx"}, n.SupportedExtensions())
}

func TestNormalise_Paragraphs(t *testing.T) {
	n := New()
	raw := &domain.RawDocument{Path: "rules.docx", Content: createTestDOCX(paragraphsXML)}

	text, err := n.Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Contains(t, text, "Per transaction limit is 500 BHD.")
	assert.Contains(t, text, "Daily transfer limit is 1000 BHD.")
}

func TestNormalise_TableCells(t *testing.T) {
	n := New()
	raw := &domain.RawDocument{Path: "rules.docx", Content: createTestDOCX(tableXML)}

	text, err := n.Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Contains(t, text, "Per transaction")
	assert.Contains(t, text, "500 BHD")
	assert.Contains(t, text, "1000 BHD")
}

func TestNormalise_NotAZip(t *testing.T) {
	n := New()
	raw := &domain.RawDocument{Path: "rules.docx", Content: []byte("plain text, not a zip")}

	_, err := n.Normalise(context.Background(), raw)

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestNormalise_MissingDocumentXML(t *testing.T) {
	n := New()
	raw := &domain.RawDocument{Path: "rules.docx", Content: createTestDOCX("")}

	_, err := n.Normalise(context.Background(), raw)

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestNormalise_NilInput(t *testing.T) {
	n := New()

	_, err := n.Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
