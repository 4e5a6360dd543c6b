package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "laporan.pdf", "laporan.pdf"},
		{"spaces", "laporan akhir 2025.pdf", "laporan_akhir_2025.pdf"},
		{"traversal", "../../etc/passwd", "etc_passwd"},
		{"weird chars", "a@b#c$.d", "a_b_c_.d"},
		{"empty", "", "file"},
		{"only junk", "###", "file"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeFilename(tc.in))
		})
	}
}

func TestGenerateEvidenceFilename(t *testing.T) {
	got := GenerateEvidenceFilename("berita acara.pdf")

	require.True(t, strings.HasPrefix(got, "evidence_"))
	require.True(t, strings.HasSuffix(got, "_berita_acara.pdf"))

	// timestamp + token membuat dua panggilan beruntun tetap berbeda
	other := GenerateEvidenceFilename("berita acara.pdf")
	assert.NotEqual(t, got, other)
}
