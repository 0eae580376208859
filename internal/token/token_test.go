package token_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"crystalseed-scanner/internal/token"
)

func TestTokenIsDeterministic(t *testing.T) {
	gen := token.NewGenerator("test-secret")

	first := gen.Token("foo@bar.com")
	second := gen.Token("foo@bar.com")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestTokenIgnoresCase(t *testing.T) {
	gen := token.NewGenerator("test-secret")

	assert.Equal(t, gen.Token("foo@bar.com"), gen.Token("Foo@Bar.com"))
	assert.Equal(t, gen.Token("foo@bar.com"), gen.Token(" FOO@BAR.COM "))
}

func TestTokenDependsOnSecret(t *testing.T) {
	a := token.NewGenerator("secret-a")
	b := token.NewGenerator("secret-b")

	assert.NotEqual(t, a.Token("foo@bar.com"), b.Token("foo@bar.com"))
}

func TestIsWellFormed(t *testing.T) {
	gen := token.NewGenerator("test-secret")

	assert.True(t, token.IsWellFormed(gen.Token("foo@bar.com")))
	assert.False(t, token.IsWellFormed(""))
	assert.False(t, token.IsWellFormed("abc123"))
	assert.False(t, token.IsWellFormed(strings.Repeat("g", 64)))
	assert.False(t, token.IsWellFormed(strings.Repeat("a", 63)))
	assert.False(t, token.IsWellFormed(strings.Repeat("a", 65)))
}

func TestFooterContainsUnsubscribeURL(t *testing.T) {
	url := "https://crystalseedtarot.com/api/unsubscribe?token=abc"

	text, html := token.Footer(url)

	assert.Contains(t, text, url)
	assert.Contains(t, html, url)
	assert.Contains(t, html, "Unsubscribe")
}
