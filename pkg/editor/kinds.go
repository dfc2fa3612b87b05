package editor

import (
	"path/filepath"
	"strings"

	"github.com/paperbay/paperbay/pkg/controlplane/models"
)

// DocumentType is the editor surface a file opens in.
type DocumentType string

const (
	TypeWord  DocumentType = "word"  // text documents
	TypeCell  DocumentType = "cell"  // spreadsheets
	TypeSlide DocumentType = "slide" // presentations
)

// typeByExtension maps lower-case file extensions (without the dot) to the
// editor surface that handles them.
var typeByExtension = map[string]DocumentType{
	"doc":  TypeWord,
	"docx": TypeWord,
	"odt":  TypeWord,
	"rtf":  TypeWord,
	"txt":  TypeWord,

	"csv":  TypeCell,
	"ods":  TypeCell,
	"xls":  TypeCell,
	"xlsx": TypeCell,

	"odp":  TypeSlide,
	"ppt":  TypeSlide,
	"pptx": TypeSlide,
}

// mimeByExtension maps supported extensions to MIME types for upload and
// download responses.
var mimeByExtension = map[string]string{
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"odt":  "application/vnd.oasis.opendocument.text",
	"rtf":  "application/rtf",
	"txt":  "text/plain",

	"csv":  "text/csv",
	"ods":  "application/vnd.oasis.opendocument.spreadsheet",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",

	"odp":  "application/vnd.oasis.opendocument.presentation",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// typeByKind and extensionByKind invert the extension maps so editability
// follows the kind tag recorded at upload, not the current display name.
var (
	typeByKind      = map[string]DocumentType{}
	extensionByKind = map[string]string{}
)

func init() {
	for ext, t := range typeByExtension {
		kind := mimeByExtension[ext]
		typeByKind[kind] = t
		extensionByKind[kind] = ext
	}
}

// Extension returns the lower-case extension of a document name, without
// the leading dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// TypeForKind returns the editor surface for a content kind, or
// ErrUnsupportedKind when no editor handles it. Renames never change the
// kind, so a document's editability survives any display name.
func TypeForKind(kind string) (DocumentType, error) {
	if t, ok := typeByKind[kind]; ok {
		return t, nil
	}
	return "", models.ErrUnsupportedKind
}

// EditableKind reports whether an editor surface exists for the content
// kind.
func EditableKind(kind string) bool {
	_, ok := typeByKind[kind]
	return ok
}

// ExtensionForKind returns the canonical file extension for a content
// kind, or the empty string for unknown kinds.
func ExtensionForKind(kind string) string {
	return extensionByKind[kind]
}

// MIMEForName returns the MIME type for a document name, falling back to
// application/octet-stream for unknown extensions.
func MIMEForName(name string) string {
	if m, ok := mimeByExtension[Extension(name)]; ok {
		return m
	}
	return "application/octet-stream"
}
