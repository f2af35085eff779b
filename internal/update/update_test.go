package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlatformInfo(t *testing.T) {
	info := GetPlatformInfo()
	assert.Contains(t, info, "/")
	assert.NotEmpty(t, info)
}
