package constants

import (
	"path/filepath"
	"strings"
)

// MIME yang boleh diunggah sebagai file bukti. Dicek terhadap hasil sniffing
// isi file, bukan header Content-Type dari klien.
var AllowedEvidenceMIMEs = map[string]struct{}{
	"application/pdf": {},

	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},

	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
	"application/vnd.ms-powerpoint":                                           {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},

	"text/plain":                   {},
	"application/zip":              {},
	"application/x-rar-compressed": {},
	"application/vnd.rar":          {},
}

func IsAllowedEvidenceMIME(mime string) bool {
	// mimetype bisa menambahkan parameter (mis. "text/plain; charset=utf-8")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	_, ok := AllowedEvidenceMIMEs[strings.TrimSpace(strings.ToLower(mime))]
	return ok
}

// Lookup ekstensi → MIME untuk download (fallback bila sniffing gagal).
var extToMIME = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".txt":  "text/plain",
	".zip":  "application/zip",
	".rar":  "application/vnd.rar",
}

func MIMEFromExt(filename string) string {
	if m, ok := extToMIME[strings.ToLower(filepath.Ext(filename))]; ok {
		return m
	}
	return "application/octet-stream"
}

// IsImageMIME menentukan apakah file bukti layak dibuatkan preview webp.
func IsImageMIME(mime string) bool {
	return strings.HasPrefix(strings.ToLower(mime), "image/")
}
