package dockerclient

import (
	"testing"

	"github.com/rshzrh/sitrep/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatPortUnpublished(t *testing.T) {
	p := model.PortMapping{PrivatePort: 8080, Type: "tcp"}
	assert.Equal(t, "8080/tcp", FormatPort(p))
}

func TestFormatPortPublished(t *testing.T) {
	p := model.PortMapping{PrivatePort: 8080, PublicPort: 32768, Type: "tcp"}
	assert.Equal(t, "32768->8080/tcp", FormatPort(p))
}

func TestFirstOr(t *testing.T) {
	assert.Equal(t, "/foo", firstOr([]string{"/foo", "/bar"}, "fallback"))
	assert.Equal(t, "fallback", firstOr(nil, "fallback"))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcdefabcdef", shortID("abcdefabcdefabcdefabcdef"))
	assert.Equal(t, "abc", shortID("abc"))
}
