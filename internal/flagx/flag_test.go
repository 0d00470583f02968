package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-d", "postgres", "-x", "1"},
			allowed: []string{"-d"},
			want:    []string{"-d", "postgres"},
		},
		{
			name:    "equals form",
			args:    []string{"-s=recycle.db", "-x", "1"},
			allowed: []string{"-s"},
			want:    []string{"-s=recycle.db"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-d"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-l"},
			allowed: []string{"-l"},
			want:    []string{"-l"},
		},
		{
			name:    "next flag is not a value",
			args:    []string{"-c", "-d", "sqlite"},
			allowed: []string{"-c", "-d"},
			want:    []string{"-c", "-d", "sqlite"},
		},
		{
			name:    "value starting with dash kept in equals form",
			args:    []string{"-config=--odd.json"},
			allowed: []string{"-config"},
			want:    []string{"-config=--odd.json"},
		},
		{
			name:    "repeated flag keeps order",
			args:    []string{"-l", "info", "-f", "json", "-l", "debug"},
			allowed: []string{"-l", "-f"},
			want:    []string{"-l", "info", "-f", "json", "-l", "debug"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFile(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/recycle.json"}, "/etc/recycle.json"},
		{"long", []string{"-config", "/etc/recycle.json"}, "/etc/recycle.json"},
		{"mixed with other flags", []string{"-d", "memory", "-c", "a.json", "-l", "debug"}, "a.json"},
		{"last wins", []string{"-c", "1.json", "-config", "2.json"}, "2.json"},
		{"absent", []string{"-d", "memory"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFile(tt.args))
		})
	}
}
