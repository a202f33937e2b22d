package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/conduit/internal/scene"
)

// RelativePrefix marks a directory as relative to the document's folder.
const RelativePrefix = "//"

// OutputPath composes the absolute export path for a document: dir (or the
// document folder when dir is empty) joined with the scene name and the
// format's extension.
func OutputPath(doc *scene.Document, format Format, dir string) (string, error) {
	if strings.TrimSpace(doc.Name) == "" {
		return "", errors.New("scene has no name")
	}
	if dir == "" {
		dir = RelativePrefix
	}
	if strings.HasPrefix(dir, RelativePrefix) {
		if !doc.IsSaved() {
			return "", ErrDocumentNotSaved
		}
		dir = filepath.Join(doc.Root(), strings.TrimPrefix(dir, RelativePrefix))
	}

	path, err := filepath.Abs(filepath.Join(dir, doc.Name+format.Extension()))
	if err != nil {
		return "", fmt.Errorf("failed to resolve export path: %w", err)
	}
	return path, nil
}
