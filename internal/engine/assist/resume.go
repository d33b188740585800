package assist

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
	pdflib "github.com/ledongthuc/pdf"
)

// sectionHeadingRe finds resume section headings at line starts. Longer
// variants come first so "TECHNICAL SKILLS" wins over "SKILLS".
var sectionHeadingRe = regexp.MustCompile(`(?im)^[ \t]*(TECHNICAL SKILLS|WORK EXPERIENCE|QUALIFICATIONS|EMPLOYMENT|EXPERIENCE|EXPERTISE|EDUCATION|ACADEMIC|SKILLS)\b[ \t]*:?`)

var (
	skillsSplitRe     = regexp.MustCompile(`[,•|\n]`)
	experienceSplitRe = regexp.MustCompile(`\d{4}\s*[-–]\s*(?:\d{4}|[Pp]resent)`)
	educationSplitRe  = regexp.MustCompile(`(?i)bachelor|master|phd|diploma`)
	xmlTagRe          = regexp.MustCompile(`<[^>]+>`)
)

// sectionKind maps a heading keyword to the record field it belongs to.
func sectionKind(heading string) string {
	switch strings.ToUpper(heading) {
	case "SKILLS", "TECHNICAL SKILLS", "EXPERTISE":
		return "skills"
	case "EXPERIENCE", "WORK EXPERIENCE", "EMPLOYMENT":
		return "experience"
	default:
		return "education"
	}
}

// splitSections cuts resume text into named sections. The body of a section
// runs from the end of its heading to the start of the next heading. Repeated
// headings of the same kind are concatenated.
func splitSections(text string) map[string]string {
	sections := make(map[string]string)
	locs := sectionHeadingRe.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range locs {
		kind := sectionKind(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(text[loc[1]:end])
		if body == "" {
			continue
		}
		if prev, ok := sections[kind]; ok {
			body = prev + "\n" + body
		}
		sections[kind] = body
	}
	return sections
}

// ParseResume extracts text from an uploaded document and splits it into a
// coarse structured record. When a remote parser service is configured it is
// tried first; local extraction is the fallback.
func ParseResume(ctx context.Context, filename string, data []byte) (*engine.ResumeRecord, error) {
	if max := engine.Cfg.MaxUploadBytes; max > 0 && int64(len(data)) > max {
		return nil, fmt.Errorf("resume: file too large (%d bytes, limit %d)", len(data), max)
	}

	text, err := extractText(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	engine.IncrResumeUploads()
	return ParseResumeText(text), nil
}

// ParseResumeText splits already-extracted resume text into the structured record.
func ParseResumeText(text string) *engine.ResumeRecord {
	sections := splitSections(text)
	return &engine.ResumeRecord{
		Skills:     splitEntries(sections["skills"], skillsSplitRe),
		Experience: splitEntries(sections["experience"], experienceSplitRe),
		Education:  splitEntries(sections["education"], educationSplitRe),
		RawText:    text,
	}
}

// splitEntries splits a section body on the given delimiter pattern and trims
// the pieces. Always returns a non-nil slice.
func splitEntries(section string, re *regexp.Regexp) []string {
	entries := []string{}
	if section == "" {
		return entries
	}
	for _, e := range re.Split(section, -1) {
		if e = strings.TrimSpace(e); e != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

// extractText picks an extraction path by file extension.
func extractText(ctx context.Context, filename string, data []byte) (string, error) {
	if engine.Cfg.ParserAPIURL != "" {
		text, err := parseRemote(ctx, filename, data)
		if err == nil {
			return text, nil
		}
		// Remote parser is best-effort; fall through to local extraction.
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx", ".doc":
		return extractDocxText(data)
	case ".pdf":
		return extractPDFText(data)
	case ".txt":
		return engine.NormalizeWhitespace(string(data)), nil
	default:
		return "", fmt.Errorf("resume: unsupported file format %q (doc, docx, pdf, txt)", ext)
	}
}

// extractDocxText pulls word/document.xml out of the docx zip container and
// strips the markup. Paragraph ends become newlines so the section splitter
// still sees line structure.
func extractDocxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("resume: open docx: %w", err)
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("resume: open document.xml: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("resume: read document.xml: %w", err)
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", fmt.Errorf("resume: no document.xml found in docx")
	}
	s := string(docXML)
	s = strings.ReplaceAll(s, "</w:p>", "\n")
	s = strings.ReplaceAll(s, "<w:tab/>", "\t")
	s = xmlTagRe.ReplaceAllString(s, " ")
	return engine.NormalizeWhitespace(s), nil
}

// extractPDFText extracts plain text from a PDF upload.
func extractPDFText(data []byte) (string, error) {
	r, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("resume: open pdf: %w", err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("resume: extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("resume: read pdf text: %w", err)
	}
	return engine.NormalizeWhitespace(buf.String()), nil
}
