package web

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Gravatar returns the avatar URL for an email address. Gravatar keys avatars by the md5 of the normalized address.
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://gravatar.com/avatar/" + hex.EncodeToString(sum[:])
}
