package guidecorpus

import (
	"context"
	"encoding/base64"
	"strings"
	"time"
	"unicode"
)

// TimestampLayout formats generation timestamps as ISO-8601 with
// microseconds and an explicit UTC offset.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// GuidanceFile is a plain-text source file read from disk.
type GuidanceFile struct {
	Path string // source path as discovered, e.g. guidelines/fatigue.txt
	Stem string // file name without extension
	Text string
}

// Document is a search datastore record derived from one guidance file.
type Document struct {
	ID         string     `json:"id"`
	Content    Content    `json:"content"`
	StructData StructData `json:"structData"`
}

// Content holds the encoded document body.
type Content struct {
	MIMEType string `json:"mimeType"`
	RawBytes string `json:"rawBytes"`
}

// StructData holds the structured fields indexed alongside the content.
type StructData struct {
	Title     string   `json:"title"`
	Source    string   `json:"source"`
	Snippet   string   `json:"snippet"`
	RawText   string   `json:"raw_text"`
	UpdatedAt string   `json:"updated_at"`
	Tags      []string `json:"tags"`
	Metadata  Metadata `json:"metadata"`
}

// Metadata records the provenance of a document.
type Metadata struct {
	OriginalFile string `json:"original_file"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if d.StructData.RawText == "" {
		return Errorf(EINVALID, "document %q has no text", d.ID)
	}
	return nil
}

// NewDocument transforms a guidance file into a document stamped with at.
// Returns nil if the file text is empty after trimming whitespace.
func NewDocument(file *GuidanceFile, opts Options, at time.Time) *Document {
	text := NormalizeText(file.Text)
	if text == "" {
		return nil
	}

	return &Document{
		ID: DocumentID(file.Stem),
		Content: Content{
			MIMEType: opts.MIMEType,
			RawBytes: base64.StdEncoding.EncodeToString([]byte(text)),
		},
		StructData: StructData{
			Title:     Title(file.Stem),
			Source:    opts.SourceLabel,
			Snippet:   Snippet(text, opts.SnippetLimit),
			RawText:   text,
			UpdatedAt: at.UTC().Format(TimestampLayout),
			Tags:      append([]string(nil), opts.Tags...),
			Metadata: Metadata{
				OriginalFile: file.Path,
			},
		},
	}
}

// NormalizeText converts line endings to \n and trims surrounding whitespace.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}

// DocumentID derives a document identifier from a file stem.
// Example: Headache_Red_Flags → headache-red-flags
func DocumentID(stem string) string {
	return strings.ToLower(strings.ReplaceAll(stem, "_", "-"))
}

// Title derives a human-readable title from a file stem.
// Underscores become spaces and each word is title-cased, where a word
// starts at any letter that does not follow another letter.
func Title(stem string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range strings.ReplaceAll(stem, "_", " ") {
		switch {
		case !unicode.IsLetter(r):
			prevLetter = false
		case prevLetter:
			r = unicode.ToLower(r)
		default:
			r = unicode.ToTitle(r)
			prevLetter = true
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Snippet returns the first limit characters of text.
func Snippet(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}

// GuidanceSource discovers and reads guidance files.
type GuidanceSource interface {
	// Discover returns guidance file paths in lexicographic order.
	// Returns ENOSOURCE if the source directory does not exist.
	Discover(ctx context.Context) ([]string, error)

	// Read loads and decodes a single guidance file.
	Read(ctx context.Context, path string) (*GuidanceFile, error)
}

// CorpusStore persists documents to a corpus with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type CorpusStore interface {
	Save(ctx context.Context, doc *Document) error
	Commit() error
	Abort() error
}
