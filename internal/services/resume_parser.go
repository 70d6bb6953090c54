package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/yoockh/yoointerview/internal/models"
	"github.com/yoockh/yoointerview/internal/utils"
)

// ResumeParserService turns an uploaded resume file (PDF, DOCX, or plain
// text) into best-effort structured fields. Field extraction is heuristic
// and never fails: anything it cannot find stays an empty string or slice.
// Only a file whose text cannot be extracted at all is an error.
type ResumeParserService interface {
	Extract(content []byte) (*models.ResumeData, error)
}

type resumeParser struct{}

func NewResumeParser() ResumeParserService {
	return &resumeParser{}
}

var (
	emailRe    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe    = regexp.MustCompile(`(?:\+\d{1,3}[-. ]?)?\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}`)
	locationRe = regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z]{2}\b`)
	degreeRe   = regexp.MustCompile(`[A-Za-z\s]*(?:Bachelor|Master|Doctor|PhD|B\.?S\.?|M\.?S\.?|Ph\.?D\.?)[A-Za-z\s.]*`)
	yearRe     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	durationRe = regexp.MustCompile(`(?i)(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s*\d{4}\s*-\s*(?:(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s*\d{4}|present|current)|\d{4}\s*-\s*(?:present|current)`)
	skillSepRe = regexp.MustCompile(`[,•;|]`)
)

func (p *resumeParser) Extract(content []byte) (*models.ResumeData, error) {
	const op = "ResumeParser.Extract"

	text, err := extractText(content)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unsupported or unreadable resume file", err)
	}

	return &models.ResumeData{
		RawText:    text,
		Contact:    extractContactInfo(text),
		Education:  extractEducation(text),
		Experience: extractExperience(text),
		Skills:     extractSkills(text),
	}, nil
}

func extractText(content []byte) (string, error) {
	switch {
	case bytes.HasPrefix(content, []byte("%PDF")):
		if text, err := pdfText(content); err == nil {
			return text, nil
		}
		// Fall through to the plain-text path; some "PDFs" in the wild are
		// mislabeled text files.
	case bytes.HasPrefix(content, []byte("PK")):
		if text, err := docxText(content); err == nil {
			return text, nil
		}
	}

	if utf8.Valid(content) && len(bytes.TrimSpace(content)) > 0 {
		return string(content), nil
	}
	return "", utils.ErrNotFound
}

func pdfText(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return "", io.ErrUnexpectedEOF
	}
	return out, nil
}

// docxText reads word/document.xml out of the DOCX zip and collects the text
// runs, one line per paragraph.
func docxText(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var doc io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if doc == nil {
		return "", io.ErrUnexpectedEOF
	}
	defer doc.Close()

	var sb strings.Builder
	dec := xml.NewDecoder(doc)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return "", io.ErrUnexpectedEOF
	}
	return out, nil
}

func extractContactInfo(text string) models.ContactInfo {
	info := models.ContactInfo{}

	if m := emailRe.FindString(text); m != "" {
		info.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		info.Phone = m
	}
	if m := locationRe.FindString(text); m != "" {
		info.Location = m
	}

	// Name heuristic: first non-empty line.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			info.Name = line
			break
		}
	}

	return info
}

func extractEducation(text string) []models.EducationEntry {
	out := []models.EducationEntry{}

	section := findSection(text, "Education", "Academic Background", "Qualifications")
	if section == "" {
		return out
	}

	for _, entry := range strings.Split(section, "\n\n") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		degree := strings.TrimSpace(degreeRe.FindString(entry))
		if degree == "" {
			continue
		}
		out = append(out, models.EducationEntry{
			Degree:      degree,
			Institution: strings.TrimSpace(strings.Split(entry, "\n")[0]),
			Year:        yearRe.FindString(entry),
		})
	}
	return out
}

func extractExperience(text string) []models.ExperienceEntry {
	out := []models.ExperienceEntry{}

	section := findSection(text, "Experience", "Work Experience", "Professional Experience")
	if section == "" {
		return out
	}

	for _, entry := range strings.Split(section, "\n\n") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		lines := strings.Split(entry, "\n")
		if len(lines) < 2 {
			continue
		}
		out = append(out, models.ExperienceEntry{
			Position:    strings.TrimSpace(lines[0]),
			Company:     strings.TrimSpace(lines[1]),
			Duration:    durationRe.FindString(entry),
			Description: strings.TrimSpace(strings.Join(lines[2:], "\n")),
		})
	}
	return out
}

func extractSkills(text string) []string {
	out := []string{}

	section := findSection(text, "Skills", "Technical Skills", "Core Competencies")
	if section == "" {
		return out
	}

	seen := map[string]struct{}{}
	for _, line := range strings.Split(section, "\n") {
		for _, skill := range skillSepRe.Split(line, -1) {
			skill = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(skill), "-"))
			if len(skill) < 2 {
				continue
			}
			key := strings.ToLower(skill)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, skill)
		}
	}
	return out
}

// findSection returns the lines between a header matching one of the names
// and the next all-caps header (or end of text).
func findSection(text string, names ...string) string {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		for _, name := range names {
			if strings.Contains(lower, strings.ToLower(name)) {
				start = i
				break
			}
		}
		if start != -1 {
			break
		}
	}
	if start == -1 {
		return ""
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line != "" && line == strings.ToUpper(line) && strings.IndexFunc(line, isLetter) != -1 {
			end = i
			break
		}
	}

	return strings.Join(lines[start+1:end], "\n")
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}
