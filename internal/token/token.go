package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Generator derives unsubscribe tokens from email addresses. The token is a
// pure function of the lowercased address, so it never needs to be stored to
// be recomputed, only to be matched against a row.
type Generator struct {
	secret string
}

func NewGenerator(secret string) *Generator {
	return &Generator{secret: secret}
}

// Token returns hex(HMAC-SHA256(secret, lowercase(email))), 64 characters.
func (g *Generator) Token(email string) string {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(mac.Sum(nil))
}

// IsWellFormed checks the exact shape a token must have before any store
// lookup is attempted.
func IsWellFormed(token string) bool {
	if len(token) != 64 {
		return false
	}
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Footer renders the ready-to-embed unsubscribe footer in plain text and
// HTML variants for a given unsubscribe URL.
func Footer(unsubscribeURL string) (text, html string) {
	text = fmt.Sprintf("---\nCrystal Seed Tarot | crystalseedtarot.com\nTo unsubscribe: %s", unsubscribeURL)
	html = fmt.Sprintf(`<p style="font-size:11px;color:#999;border-top:1px solid #eee;padding-top:8px;margin-top:24px;">Crystal Seed Tarot · <a href="https://crystalseedtarot.com" style="color:#999;">crystalseedtarot.com</a><br><a href="%s" style="color:#999;">Unsubscribe</a></p>`, unsubscribeURL)
	return text, html
}
