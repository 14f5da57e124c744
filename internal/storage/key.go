package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadKey builds the object key app/model/YYYY/MM/DD/<uuid><ext> for an
// uploaded file. The extension is kept from filename and lower-cased.
func UploadKey(app, model string, now time.Time, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s/%s%s",
		app,
		model,
		now.Format("2006/01/02"),
		strings.ReplaceAll(uuid.NewString(), "-", ""),
		ext,
	)
}
