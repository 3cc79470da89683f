package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/qawatake/md2jira/internal/document"
	"github.com/qawatake/md2jira/internal/ui"
)

// findMarkdownFiles lists the Markdown files under root, skipping hidden
// directories.
func findMarkdownFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown":
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func pickMarkdownFile(root string) (string, error) {
	files, err := findMarkdownFiles(root)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no Markdown files under %s: %w", root, errNoInput)
	}

	previews := make(map[int]string)
	idx, err := fuzzyfinder.Find(
		files,
		func(i int) string { return files[i] },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i < 0 {
				return ""
			}
			if p, ok := previews[i]; ok {
				return p
			}
			previews[i] = previewMarkup(files[i])
			return previews[i]
		}),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return "", ui.ErrCancelled
	}
	if err != nil {
		return "", err
	}
	return files[idx], nil
}

func previewMarkup(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return err.Error()
	}
	res, err := document.Convert(string(b), markdownOptions()...)
	if err != nil {
		return err.Error()
	}
	return res.Markup
}
