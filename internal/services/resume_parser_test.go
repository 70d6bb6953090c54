package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/yoointerview/internal/utils"
)

const sampleResume = `Jane Smith
jane.smith@example.com
(555) 123-4567
Austin, TX

EDUCATION

University of Texas
Bachelor of Science in Computer Science
2018

EXPERIENCE

Senior Engineer
Acme Corp
Jan 2020 - Present
Built backend services in Go.

SKILLS

Go, Python, Kubernetes
- Distributed systems
`

func TestExtractFromPlainText(t *testing.T) {
	parser := NewResumeParser()

	data, err := parser.Extract([]byte(sampleResume))
	require.NoError(t, err)

	assert.Equal(t, sampleResume, data.RawText)
	assert.Equal(t, "Jane Smith", data.Contact.Name)
	assert.Equal(t, "jane.smith@example.com", data.Contact.Email)
	assert.Equal(t, "(555) 123-4567", data.Contact.Phone)
	assert.Equal(t, "Austin, TX", data.Contact.Location)

	require.Len(t, data.Education, 1)
	assert.Contains(t, data.Education[0].Degree, "Bachelor of Science")
	assert.Equal(t, "University of Texas", data.Education[0].Institution)
	assert.Equal(t, "2018", data.Education[0].Year)

	require.Len(t, data.Experience, 1)
	assert.Equal(t, "Senior Engineer", data.Experience[0].Position)
	assert.Equal(t, "Acme Corp", data.Experience[0].Company)
	assert.Equal(t, "Jan 2020 - Present", data.Experience[0].Duration)
	assert.Contains(t, data.Experience[0].Description, "Built backend services in Go.")

	assert.Equal(t, []string{"Go", "Python", "Kubernetes", "Distributed systems"}, data.Skills)
}

func TestExtractMissingSections(t *testing.T) {
	parser := NewResumeParser()

	data, err := parser.Extract([]byte("John Doe\njust a plain paragraph about nothing"))
	require.NoError(t, err)

	assert.Equal(t, "John Doe", data.Contact.Name)
	assert.Empty(t, data.Contact.Email)
	assert.Empty(t, data.Education)
	assert.Empty(t, data.Experience)
	assert.Empty(t, data.Skills)
	// empty, not nil, so the JSON shape stays stable
	assert.NotNil(t, data.Education)
	assert.NotNil(t, data.Skills)
}

func TestExtractFromDocx(t *testing.T) {
	parser := NewResumeParser()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?>
<document>
  <body>
    <p><r><t>Jane Smith</t></r></p>
    <p><r><t>jane.smith@example.com</t></r></p>
  </body>
</document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	data, err := parser.Extract(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", data.Contact.Name)
	assert.Equal(t, "jane.smith@example.com", data.Contact.Email)
}

func TestExtractUnreadableContent(t *testing.T) {
	parser := NewResumeParser()

	_, err := parser.Extract([]byte{0xff, 0xfe, 0x00, 0x01})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestExtractEmptyContent(t *testing.T) {
	parser := NewResumeParser()

	_, err := parser.Extract([]byte("   \n  "))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestFindSectionStopsAtNextHeader(t *testing.T) {
	text := "intro\nSKILLS\nGo\nPython\nEXPERIENCE\nsomething else"
	section := findSection(text, "Skills")
	assert.Equal(t, "Go\nPython", section)
}

func TestFindSectionAbsent(t *testing.T) {
	assert.Empty(t, findSection("no headers here", "Skills"))
}
