package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	s := String()
	assert.True(t, strings.HasPrefix(s, Product+" version "+BuildVersion))
	assert.Contains(t, s, BuildCommit)
	assert.Contains(t, s, GoVersion)
}

func TestInfo(t *testing.T) {
	info := Info()
	assert.Equal(t, BuildVersion, info["version"])
	assert.Equal(t, BuildCommit, info["commit"])
	assert.Equal(t, BuildDate, info["build_date"])
	assert.Equal(t, GoVersion, info["go_version"])
}

func TestUserAgent(t *testing.T) {
	assert.True(t, strings.HasPrefix(UserAgent(), Product+"/"+BuildVersion))
}
