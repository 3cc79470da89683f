package extension

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/qawatake/md2jira/internal/verbose"
)

// Prefix is the file name prefix of md2jira extensions.
const Prefix = "md2jira-"

// ConfigEnv tells an extension which configuration file md2jira loaded.
const ConfigEnv = "MD2JIRA_CONFIG"

// Manager manages md2jira extensions
type Manager struct {
	// ConfigFile is exported to extensions through ConfigEnv when set.
	ConfigFile string
}

// NewManager creates a new extension manager
func NewManager(configFile string) *Manager {
	return &Manager{ConfigFile: configFile}
}

// FindExtensions discovers all md2jira extensions in the PATH. When two
// directories hold the same name, the one earlier in PATH wins.
func (m *Manager) FindExtensions() ([]Extension, error) {
	extensions := make([]Extension, 0)
	seen := make(map[string]bool)

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, file := range files {
			extName, ok := strings.CutPrefix(file.Name(), Prefix)
			if !ok || extName == "" || seen[extName] {
				continue
			}

			fullPath := filepath.Join(dir, file.Name())
			if info, err := os.Stat(fullPath); err == nil && isExecutable(info) {
				seen[extName] = true
				extensions = append(extensions, Extension{
					Name: extName,
					Path: fullPath,
				})
			}
		}
	}

	sort.Slice(extensions, func(i, j int) bool {
		return extensions[i].Name < extensions[j].Name
	})

	return extensions, nil
}

// Find returns the extension called name.
func (m *Manager) Find(name string) (Extension, bool, error) {
	extensions, err := m.FindExtensions()
	if err != nil {
		return Extension{}, false, err
	}
	for _, ext := range extensions {
		if ext.Name == name {
			return ext, true, nil
		}
	}
	return Extension{}, false, nil
}

// Execute runs an extension with the given arguments
func (m *Manager) Execute(ctx context.Context, name string, args []string) error {
	ext, ok, err := m.Find(name)
	if err != nil {
		return fmt.Errorf("failed to find extensions: %w", err)
	}
	if !ok {
		return fmt.Errorf("extension '%s' not found", name)
	}
	var env []string
	if m.ConfigFile != "" {
		env = append(env, ConfigEnv+"="+m.ConfigFile)
	}
	return ext.Execute(ctx, args, env...)
}

// Extension represents a md2jira extension
type Extension struct {
	Name string
	Path string
}

// Execute runs the extension with the given arguments. env is appended to
// the environment of the current process.
func (e Extension) Execute(ctx context.Context, args []string, env ...string) error {
	verbose.Printf("Executing extension: %s %v\n", e.Path, args)

	cmd := exec.CommandContext(ctx, e.Path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), env...)

	return cmd.Run()
}

func isExecutable(info os.FileInfo) bool {
	mode := info.Mode()
	return mode.IsRegular() && (mode.Perm()&0111) != 0
}
