// Package codebase keeps the parse results for every .java file below a
// directory up to date.
package codebase

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/jparse/java/parser"
)

var log = commonlog.GetLogger("jparse.codebase")

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	opts    []parser.Option
	files   map[string]*FileInfo
}

// FileInfo is the latest parse of one file.
type FileInfo struct {
	Path        string
	Content     []byte
	AST         *parser.Node
	Diagnostics []parser.Diagnostic
	Docs        map[parser.NodeID]string
	Comments    []parser.Token
	ParseErr    error
}

// ErrorCount is the number of error diagnostics, counting a failed parse
// as one.
func (f *FileInfo) ErrorCount() int {
	n := 0
	if f.ParseErr != nil {
		n++
	}
	for _, d := range f.Diagnostics {
		if d.Severity == parser.SeverityError {
			n++
		}
	}
	return n
}

// New creates an empty codebase rooted at rootDir. The options are applied
// to every parse, after the file name.
func New(rootDir string, opts ...parser.Option) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		opts:    opts,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// JavaFiles lists the .java files below root in lexical order, skipping
// hidden directories.
func JavaFiles(root string) ([]string, error) {
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
		if IsJavaFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func IsJavaFile(path string) bool {
	return filepath.Ext(path) == ".java"
}

// ScanAll parses every .java file below the root, at most jobs at a time.
// A failure to read one file does not stop the others; the first such
// error is returned.
func (c *Codebase) ScanAll(ctx context.Context, jobs int) error {
	files, err := JavaFiles(c.rootDir)
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	var (
		mu       sync.Mutex
		firstErr error
	)
	for _, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := c.ScanFile(path); err != nil {
				log.Errorf("scan %s: %s", path, err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Infof("scanned %d files in %s", len(files), c.rootDir)
	return firstErr
}

// ScanFile reads and parses path.
func (c *Codebase) ScanFile(path string) (*FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.UpdateFile(path, content), nil
}

// UpdateFile parses content as the new state of path. The parse runs
// outside the lock.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	info := c.parse(path, content)

	c.mu.Lock()
	c.files[path] = info
	c.mu.Unlock()

	log.Debugf("parsed %s: %d diagnostics", path, len(info.Diagnostics))
	return info
}

func (c *Codebase) parse(path string, content []byte) *FileInfo {
	opts := append([]parser.Option{
		parser.WithFile(path),
		parser.WithComments(),
		parser.WithDocComments(),
		parser.WithEndPositions(),
	}, c.opts...)
	p := parser.ParseCompilationUnit(bytes.NewReader(content), opts...)
	ast, err := p.Finish()
	return &FileInfo{
		Path:        path,
		Content:     content,
		AST:         ast,
		Diagnostics: p.Diagnostics(),
		Docs:        p.DocComments(),
		Comments:    p.Comments(),
		ParseErr:    err,
	}
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns the parsed files sorted by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	c.mu.RUnlock()

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// ErrorCount sums the errors over all files.
func (c *Codebase) ErrorCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, f := range c.files {
		n += f.ErrorCount()
	}
	return n
}
