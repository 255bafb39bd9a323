package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		boolFlags    []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-d", "state.db"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.json", "-d", "state.db"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash-prefixed token is not a value",
			args:         []string{"-c", "-v", "debug"},
			allowedFlags: []string{"-c", "-v"},
			want:         []string{"-c", "-v", "debug"},
		},
		{
			name:         "bool flag does not swallow the next argument",
			args:         []string{"-l", "state.db", "-d", "x.db"},
			allowedFlags: []string{"-l", "-d"},
			boolFlags:    []string{"-l"},
			want:         []string{"-l", "-d", "x.db"},
		},
		{
			name:         "bool flag with explicit value",
			args:         []string{"-l=false", "-v", "warn"},
			allowedFlags: []string{"-l", "-v"},
			boolFlags:    []string{"-l"},
			want:         []string{"-l=false", "-v", "warn"},
		},
		{
			name:         "bool flag not in allowed list is ignored",
			args:         []string{"-l"},
			allowedFlags: []string{"-d"},
			boolFlags:    []string{"-l"},
			want:         []string{},
		},
		{
			name:         "repeated flag preserved in order",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags, tt.boolFlags...))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/path/short.json", ConfigPath([]string{"-c", "/path/short.json"}))
	assert.Equal(t, "/path/long.json", ConfigPath([]string{"-config", "/path/long.json", "-l"}))
	assert.Equal(t, "/path/2.json", ConfigPath([]string{"-c", "/path/1.json", "-config=/path/2.json"}))
	assert.Empty(t, ConfigPath([]string{"-x", "1", "-d", "db"}))
	assert.Empty(t, ConfigPath(nil))
}
