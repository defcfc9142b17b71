package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

const maxExtLen = 10

// NameGenerator produces storage names "{unix-ms}-{16 hex}{ext}".
type NameGenerator struct {
	now  func() time.Time
	rand io.Reader
}

func NewNameGenerator() *NameGenerator {
	return &NameGenerator{now: time.Now, rand: rand.Reader}
}

func (g *NameGenerator) Generate(original string) (string, error) {
	var b [8]byte
	if _, err := io.ReadFull(g.rand, b[:]); err != nil {
		return "", fmt.Errorf("random name: %w", err)
	}

	return fmt.Sprintf("%d-%s%s", g.now().UnixMilli(), hex.EncodeToString(b[:]), safeExt(original)), nil
}

// safeExt returns the lower-cased extension of original when it is short
// and alphanumeric, otherwise "". Client paths of either separator style
// are reduced to their last element first.
func safeExt(original string) string {
	s := strings.ReplaceAll(strings.TrimSpace(original), "\\", "/")
	s = norm.NFC.String(path.Base(s))

	ext := strings.ToLower(path.Ext(s))
	if len(ext) < 2 || len(ext) > maxExtLen+1 {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}
