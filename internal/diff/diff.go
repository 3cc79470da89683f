// Package diff renders git style unified diffs between two versions of a
// converted document.
package diff

import (
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Result is the diff of one file.
type Result struct {
	Path    string
	Changed bool
	Text    string
}

// Unified compares from and to line by line and encodes the result as a
// unified diff headed by path. An empty from is treated as a new file.
func Unified(path, from, to string, color bool) (*Result, error) {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 1 * time.Second
	fromRunes, toRunes, lines := dmp.DiffLinesToRunes(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(fromRunes, toRunes, false), lines)

	changed := false
	chunks := make([]diff.Chunk, 0, len(diffs))
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			changed = true
		}
		chunks = append(chunks, newChunkFromDiff(d))
	}
	if !changed {
		return &Result{Path: path}, nil
	}

	var fromFile diff.File
	if from != "" {
		fromFile = newFile(path, from)
	}
	patch := &gitDiffPatch{
		filePatches: []diff.FilePatch{
			&filePatch{from: fromFile, to: newFile(path, to), chunks: chunks},
		},
	}

	var b strings.Builder
	enc := diff.NewUnifiedEncoder(&b, diff.DefaultContextLines)
	if color {
		enc.SetColor(diff.NewColorConfig())
	}
	if err := enc.Encode(patch); err != nil {
		return nil, err
	}
	return &Result{Path: path, Changed: true, Text: b.String()}, nil
}

func newFile(path, content string) *diffFile {
	return &diffFile{
		fileMode: filemode.Regular,
		relPath:  path,
		hash:     plumbing.ComputeHash(plumbing.BlobObject, []byte(content)),
	}
}

// Adapters from diffmatchpatch output to go-git's diff interfaces, modeled on
// chezmoi's diff command.
type gitDiffPatch struct {
	filePatches []diff.FilePatch
	message     string
}

func (p *gitDiffPatch) FilePatches() []diff.FilePatch { return p.filePatches }
func (p *gitDiffPatch) Message() string               { return p.message }

type filePatch struct {
	from, to diff.File
	chunks   []diff.Chunk
}

var _ diff.FilePatch = (*filePatch)(nil)

func (f *filePatch) Chunks() []diff.Chunk        { return f.chunks }
func (f *filePatch) Files() (from, to diff.File) { return f.from, f.to }
func (f *filePatch) IsBinary() bool              { return false }

type diffFile struct {
	fileMode filemode.FileMode
	relPath  string
	hash     plumbing.Hash
}

var _ diff.File = (*diffFile)(nil)

func (f *diffFile) Hash() plumbing.Hash     { return f.hash }
func (f *diffFile) Mode() filemode.FileMode { return f.fileMode }
func (f *diffFile) Path() string            { return f.relPath }

type diffChunk struct {
	content   string
	operation diff.Operation
}

var _ diff.Chunk = diffChunk{}

func (d diffChunk) Content() string      { return d.content }
func (d diffChunk) Type() diff.Operation { return d.operation }

func newChunkFromDiff(d diffmatchpatch.Diff) diff.Chunk {
	var op diff.Operation
	switch d.Type {
	case diffmatchpatch.DiffInsert:
		op = diff.Add
	case diffmatchpatch.DiffDelete:
		op = diff.Delete
	default:
		op = diff.Equal
	}
	return diffChunk{content: d.Text, operation: op}
}
