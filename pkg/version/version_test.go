package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildInfo(settings ...debug.BuildSetting) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: settings}, true
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		linked string
		read   func() (*debug.BuildInfo, bool)
		want   string
	}{
		{
			name:   "linker value wins",
			linked: "abc1234",
			read:   buildInfo(debug.BuildSetting{Key: "vcs.revision", Value: "ffffffffffff"}),
			want:   "abc1234",
		},
		{
			name:   "linker value is shortened",
			linked: "0123456789abcdef",
			want:   "0123456",
		},
		{
			name: "build info revision",
			read: buildInfo(debug.BuildSetting{Key: "vcs", Value: "git"}, debug.BuildSetting{Key: "vcs.revision", Value: "deadbeefcafe"}),
			want: "deadbee",
		},
		{
			name: "no build info",
			read: func() (*debug.BuildInfo, bool) { return nil, false },
			want: "unknown",
		},
		{
			name: "nil build info",
			read: func() (*debug.BuildInfo, bool) { return nil, true },
			want: "unknown",
		},
		{
			name: "no repository context",
			read: buildInfo(debug.BuildSetting{Key: "GOOS", Value: "linux"}),
			want: "unknown",
		},
		{
			name: "empty revision",
			read: buildInfo(debug.BuildSetting{Key: "vcs.revision", Value: ""}),
			want: "unknown",
		},
		{
			name: "no reader",
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.linked, tt.read))
		})
	}
}

func TestBanner(t *testing.T) {
	b := Banner()
	assert.True(t, strings.HasPrefix(b, "jqrt "+Version+" ("))
	assert.True(t, strings.HasSuffix(b, ")"))
	assert.NotEmpty(t, ShortCommit())
}
