package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/flowtide/firehosegen/provisioner/plugin"
)

// Local is a store implementation that writes to the local filesystem,
// under the .firehosegen directory of the working directory.
type Local struct {
	fs billy.Filesystem
}

func newLocal(id string) *Local {
	pwd, _ := os.Getwd()
	dotDir := filepath.Join(pwd, ".firehosegen")
	if _, err := os.Stat(dotDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dotDir, 0755); err != nil {
			panic(err)
		}
	}
	dir := filepath.Join(dotDir, id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			panic(err)
		}
	}

	fs := osfs.New(dir)

	return &Local{
		fs: fs,
	}
}

func (f *Local) Transact(fn func(path string) (*plugin.RenderResult, error)) (*plugin.RenderResult, error) {
	r, err := fn(f.fs.Root())
	return r, err
}

func (f *Local) Put(ctx context.Context, path, content string) error {
	dir, name := filepath.Split(path)
	return f.write(dir, File{Name: name, Content: content})
}

func (f *Local) Commit(ctx context.Context, subject, body string) error {
	return nil
}

type File struct {
	Name    string
	Content string
}

func (f *Local) write(dir string, files ...File) error {
	for _, file := range files {
		if err := f.fs.MkdirAll(dir, 0755); err != nil {
			return err
		}

		p := f.fs.Join(dir, file.Name)

		w, err := f.fs.OpenFile(p, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}

		if _, err := w.Write([]byte(file.Content)); err != nil {
			w.Close()
			return err
		}

		if err := w.Close(); err != nil {
			return err
		}
	}

	return nil
}
