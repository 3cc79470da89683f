package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "md2jira-lint"), []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("PATH", dir)

	tests := []struct {
		name     string
		args     []string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{name: "extension", args: []string{"lint", "a.md"}, wantName: "lint", wantArgs: []string{"a.md"}, wantOK: true},
		{name: "builtin command wins", args: []string{"convert", "a.md"}},
		{name: "flag", args: []string{"--verbose"}},
		{name: "unknown", args: []string{"nope"}},
		{name: "no args"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, ok := lookupExtension(tt.args)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
