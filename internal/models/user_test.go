package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	// md5("test@example.com") = 55502f40dc8b7c769880b10874abc9d0
	want := "https://www.gravatar.com/avatar/55502f40dc8b7c769880b10874abc9d0?s=200&d=mm&r=pg"

	assert.Equal(t, want, GravatarURL("test@example.com"))
	// hashing normalizes case and surrounding whitespace
	assert.Equal(t, want, GravatarURL("  Test@Example.COM "))
}
