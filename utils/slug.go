package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path"
	"strings"
	"time"
	"unicode"
)

const randomAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Slugify lowercases s and replaces every non-alphanumeric run with a single
// hyphen, trimming leading/trailing hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) && r < 128 || '0' <= r && r <= '9' {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// RandomString returns n random alphanumeric characters.
func RandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(randomAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// fall back to a time-derived character, never fail a rename
			b[i] = randomAlphabet[time.Now().UnixNano()%int64(len(randomAlphabet))]
			continue
		}
		b[i] = randomAlphabet[idx.Int64()]
	}
	return string(b)
}

// UniqueFileName builds the permanent object name for a committed upload:
// slugified title, upload timestamp, random suffix, original extension.
func UniqueFileName(title, originalName string) string {
	slug := Slugify(title)
	if slug == "" {
		slug = "file"
	}
	ext := path.Ext(originalName)
	return fmt.Sprintf("%s-%d-%s%s", slug, time.Now().Unix(), RandomString(8), ext)
}
