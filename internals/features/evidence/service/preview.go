package service

import (
	"log"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"akreditasiku_backend/internals/constants"
)

// GenerateImagePreview membuat sidecar preview webp (maks 480px) di samping
// file bukti bergambar. Best-effort: kegagalan hanya dicatat, upload tetap sah.
func GenerateImagePreview(path, mime string) {
	if !constants.IsImageMIME(mime) {
		return
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		log.Printf("[PREVIEW] gagal buka gambar %s: %v", path, err)
		return
	}

	thumb := imaging.Fit(img, 480, 480, imaging.Lanczos)

	out, err := os.Create(path + ".webp")
	if err != nil {
		log.Printf("[PREVIEW] gagal buat file preview: %v", err)
		return
	}
	defer out.Close()

	if err := webp.Encode(out, thumb, &webp.Options{Quality: 80}); err != nil {
		log.Printf("[PREVIEW] gagal encode webp: %v", err)
	}
}
