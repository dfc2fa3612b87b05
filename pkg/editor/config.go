package editor

import (
	"fmt"

	"github.com/paperbay/paperbay/pkg/controlplane/models"
)

// Callback status codes posted by the external editing service.
const (
	CallbackEditing        = 1 // document is being edited
	CallbackSave           = 2 // document ready for saving
	CallbackSaveError      = 3 // saving error occurred
	CallbackClosed         = 4 // document closed with no changes
	CallbackForceSave      = 6 // force-save requested
	CallbackForceSaveError = 7 // force-save error occurred
)

// PermissionsConfig is the per-session permission block handed to the
// editor.
type PermissionsConfig struct {
	Edit     bool `json:"edit"`
	Download bool `json:"download"`
	Print    bool `json:"print"`
}

// DocumentConfig describes the document being opened.
type DocumentConfig struct {
	FileType    string            `json:"fileType"`
	Key         string            `json:"key"`
	Title       string            `json:"title"`
	URL         string            `json:"url"`
	Permissions PermissionsConfig `json:"permissions"`
}

// UserConfig identifies the editing user to the editor UI. Anonymous
// public sessions carry a placeholder.
type UserConfig struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EditorConfig is the editor-side half of the bootstrap payload.
type EditorConfig struct {
	Mode        string     `json:"mode"` // "edit" or "view"
	CallbackURL string     `json:"callbackUrl"`
	User        UserConfig `json:"user"`
}

// SessionConfig is the full bootstrap payload the frontend passes to the
// external editing service.
type SessionConfig struct {
	DocumentType string         `json:"documentType"`
	Document     DocumentConfig `json:"document"`
	Editor       EditorConfig   `json:"editorConfig"`
}

// BuildSessionConfig assembles the bootstrap payload for a session.
// baseURL is the externally reachable address of this server; the editor
// fetches content and posts callbacks through it using the session token.
//
// The document key changes with every version so the editing service never
// serves a stale cached rendition after a write-back.
func BuildSessionConfig(session *models.EditorSession, doc *models.Document, user *models.User, baseURL string) (*SessionConfig, error) {
	docType, err := TypeForKind(doc.Kind)
	if err != nil {
		return nil, err
	}

	mode := "view"
	if session.CanWrite() {
		mode = "edit"
	}
	uc := UserConfig{ID: "anonymous", Name: "Guest"}
	if user != nil {
		uc = UserConfig{ID: user.ID, Name: user.Username}
	}

	return &SessionConfig{
		DocumentType: string(docType),
		Document: DocumentConfig{
			FileType: ExtensionForKind(doc.Kind),
			Key:      fmt.Sprintf("%s-%d", doc.ID, session.BaseVersion),
			Title:    doc.Name,
			URL:      fmt.Sprintf("%s/api/v1/editor/sessions/content?token=%s", baseURL, session.Token),
			Permissions: PermissionsConfig{
				Edit:     session.CanWrite(),
				Download: true,
				Print:    true,
			},
		},
		Editor: EditorConfig{
			Mode:        mode,
			CallbackURL: fmt.Sprintf("%s/api/v1/editor/sessions/callback?token=%s", baseURL, session.Token),
			User:        uc,
		},
	}, nil
}
