package gmail

import (
	"encoding/base64"
	"regexp"
	"strings"

	"google.golang.org/api/gmail/v1"
)

var fromPattern = regexp.MustCompile(`^(.+?)\s*<(.+?)>$`)

// ExtractSender pulls a normalized sender name and lowercased address out of
// message headers. A "Display Name <addr>" From header splits into both; a
// bare address yields an empty name; a missing From header yields both empty.
func ExtractSender(headers []*gmail.MessagePartHeader) (name, email string) {
	for _, h := range headers {
		if !strings.EqualFold(h.Name, "From") {
			continue
		}
		if m := fromPattern.FindStringSubmatch(h.Value); m != nil {
			return strings.TrimSpace(strings.ReplaceAll(m[1], `"`, "")), strings.ToLower(m[2])
		}
		return "", strings.ToLower(strings.TrimSpace(h.Value))
	}
	return "", ""
}

func ExtractSubject(headers []*gmail.MessagePartHeader) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, "Subject") {
			return h.Value
		}
	}
	return ""
}

// ExtractSnippet finds the first text/plain part, checking the root, its
// children, and its grandchildren. Plain-text parts commonly sit two levels
// deep under multipart/alternative inside multipart/mixed; deeper nesting is
// not worth traversing for a preview. Returns "" when nothing matches so the
// caller can fall back to the provider snippet.
func ExtractSnippet(payload *gmail.MessagePart, maxChars int) string {
	if payload == nil {
		return ""
	}
	if s := decodePlainText(payload, maxChars); s != "" {
		return s
	}
	for _, part := range payload.Parts {
		if s := decodePlainText(part, maxChars); s != "" {
			return s
		}
		for _, sub := range part.Parts {
			if s := decodePlainText(sub, maxChars); s != "" {
				return s
			}
		}
	}
	return ""
}

func decodePlainText(part *gmail.MessagePart, maxChars int) string {
	if part == nil || part.MimeType != "text/plain" || part.Body == nil || part.Body.Data == "" {
		return ""
	}
	decoded, err := base64.URLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		// Gmail omits padding on some payloads
		decoded, err = base64.RawURLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			return ""
		}
	}
	return truncate(string(decoded), maxChars)
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
