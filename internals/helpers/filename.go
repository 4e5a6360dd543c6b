package helper

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var nonFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// SanitizeFilename menghapus karakter selain huruf, angka, titik, dash, underscore.
func SanitizeFilename(filename string) string {
	clean := nonFilenameChars.ReplaceAllString(filename, "_")
	clean = strings.Trim(clean, "._")
	if clean == "" {
		clean = "file"
	}
	return clean
}

// GenerateEvidenceFilename membuat nama file anti-tabrakan:
// evidence_<unix>_<token>_<nama asli tersanitasi>
func GenerateEvidenceFilename(original string) string {
	token := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("evidence_%d_%s_%s", time.Now().Unix(), token, SanitizeFilename(original))
}
