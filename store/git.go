package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/flowtide/firehosegen/provisioner/plugin"
)

// Git is a key-value-store-like interface for the gitops repository that
// contains the provisioning documents.
type Git struct {
	Auth transport.AuthMethod

	// GitRepoURL is the URL of the git repository that contains the
	// provisioning documents.
	// It needs to be a URL that can be handled by go-git and git-clone.
	GitRepoURL string

	// repository is the local clone of GitRepoURL.
	// It is not nil only after clone() has succeeded.
	repository *git.Repository

	// worktree is the worktree of the local clone.
	worktree *git.Worktree

	// AuthorName is the username to be used when committing changes to
	// the gitops repository. It is usually the name of the bot user, in
	// the form "username", not "username <email>".
	AuthorName string

	AuthorEmail string

	baseBranch string
	// BaseRefName is the name of the branch that contains the documents.
	// It is usually "master" or "main".
	BaseRefName plumbing.ReferenceName

	newBranch  string
	NewRefName *plumbing.ReferenceName

	// GitRoot is the root directory the remote repository is cloned
	// under. If empty, an in-memory filesystem is used.
	GitRoot string
	// cloned is true when the git repository has been cloned.
	cloned bool

	// Push specifies whether the gitops repository is updated via git push.
	Push bool
}

func newGit(auth transport.AuthMethod, baseBranch, newBranch, gitRepoURL, authorUserName, authorEmail, gitRoot string, push bool) *Git {
	baseRefName := plumbing.Master
	if baseBranch != "" {
		baseRefName = plumbing.NewBranchReferenceName(baseBranch)
	}

	g := &Git{
		Auth:        auth,
		baseBranch:  baseBranch,
		BaseRefName: baseRefName,
		GitRepoURL:  gitRepoURL,
		AuthorName:  authorUserName,
		AuthorEmail: authorEmail,
		GitRoot:     gitRoot,
		Push:        push,
	}

	if newBranch != "" {
		g.newBranch = newBranch

		n := plumbing.ReferenceName("refs/heads/" + newBranch)
		g.NewRefName = &n
	}

	return g
}

func (g *Git) Transact(fn func(path string) (*plugin.RenderResult, error)) (*plugin.RenderResult, error) {
	w, err := g.createAndCheckoutNewBranch("")
	if err != nil {
		return nil, fmt.Errorf("unable to create and/or checkout branch: %w", err)
	}

	r, err := fn(g.getLocalRepoPath())
	if err != nil {
		return nil, err
	}

	for _, f := range r.AddedOrModifiedFiles {
		if _, err := w.Add(f); err != nil {
			return nil, fmt.Errorf("unable to run git-add (chroot=%s, name=%s): %w", g.getLocalRepoPath(), f, err)
		}
	}

	for _, f := range r.DeletedFiles {
		if _, err := w.Remove(f); err != nil {
			return nil, fmt.Errorf("unable to run git-rm: %w", err)
		}
	}

	return r, nil
}

func (g *Git) Put(ctx context.Context, path string, content string) error {
	w, err := g.createAndCheckoutNewBranch("")
	if err != nil {
		return fmt.Errorf("unable to create and/or checkout branch: %w", err)
	}

	fs := w.Filesystem

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("unable to create directory %q: %w", dir, err)
		}
	}

	f, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("unable to open file %q: %w", path, err)
	}

	if _, err := f.Write([]byte(content)); err != nil {
		f.Close()
		return fmt.Errorf("unable to write file %q: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to close file %q: %w", path, err)
	}

	if _, err := w.Add(path); err != nil {
		return fmt.Errorf("unable to run git-add: %w", err)
	}

	return nil
}

func (g *Git) Commit(ctx context.Context, subject, body string) error {
	if !g.Push {
		return nil
	}

	w, err := g.getWorktree()
	if err != nil {
		return fmt.Errorf("unable to get worktree: %w", err)
	}

	hash, err := w.Commit(subject, &git.CommitOptions{
		Author: &object.Signature{
			Name:  g.AuthorName,
			Email: g.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("unable to commit: %w", err)
	}

	ref := plumbing.NewReferenceFromStrings(string(g.BaseRefName), hash.String())
	if err := g.repository.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("unable to set reference %v: %w", ref, err)
	}

	remote, err := g.repository.Remote("origin")
	if err != nil {
		return fmt.Errorf("unable to get remote origin: %w", err)
	}

	var refName plumbing.ReferenceName
	if g.NewRefName == nil {
		refName = g.BaseRefName
	} else {
		refName = *g.NewRefName
	}

	if err := remote.Push(&git.PushOptions{
		Progress: os.Stdout,
		RefSpecs: []config.RefSpec{
			config.RefSpec(refName + ":" + refName),
		},
		Auth: g.Auth,
	}); err != nil {
		return fmt.Errorf("unable to push %v to remote origin: %w", refName, err)
	}

	return nil
}

func (g *Git) getWorktree() (*git.Worktree, error) {
	if g.worktree != nil {
		return g.worktree, nil
	}

	w, err := g.repository.Worktree()
	if err != nil {
		return nil, err
	}

	g.worktree = w

	return w, nil
}

func (g *Git) getLocalRepoPath() string {
	dir := g.GitRepoURL
	dir = strings.TrimPrefix(dir, "https://")
	dir = strings.TrimPrefix(dir, "http://")
	dir = strings.TrimPrefix(dir, "git@")
	dir = strings.TrimSuffix(dir, ".git")

	return filepath.Join(g.GitRoot, dir)
}

func (g *Git) clone() error {
	var (
		storer storage.Storer
		fs     billy.Filesystem
	)

	if g.GitRoot != "" {
		gitRoot := g.getLocalRepoPath()
		fs = osfs.New(gitRoot)
		storer = filesystem.NewStorage(
			osfs.New(filepath.Join(gitRoot, ".git")),
			cache.NewObjectLRUDefault(),
		)
	} else {
		storer = memory.NewStorage()
		fs = memfs.New()
	}
	r, err := git.Clone(storer, fs, &git.CloneOptions{
		URL:  g.GitRepoURL,
		Auth: g.Auth,
	})

	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		r, err = git.PlainOpen(g.getLocalRepoPath())
		if err != nil {
			return fmt.Errorf("unable to open local git repository: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to clone git repository %s: %w", g.GitRepoURL, err)
	}

	g.repository = r

	return nil
}

func (g *Git) createAndCheckoutNewBranch(branch string) (*git.Worktree, error) {
	if !g.cloned {
		if err := g.clone(); err != nil {
			return nil, err
		}

		g.cloned = true
	}

	w, err := g.getWorktree()
	if err != nil {
		return nil, fmt.Errorf("unable to get worktree: %w", err)
	}

	if checkoutErr := w.Checkout(&git.CheckoutOptions{
		Create: false,
		Branch: g.BaseRefName,
	}); checkoutErr != nil {
		remote, err := g.repository.Remote("origin")
		if err != nil {
			return nil, fmt.Errorf("unable to get remote origin: %w", err)
		}

		if err := remote.Fetch(&git.FetchOptions{
			Auth: g.Auth,
			RefSpecs: []config.RefSpec{
				config.RefSpec(g.BaseRefName + ":" + g.BaseRefName),
			},
		}); err != nil {
			return nil, fmt.Errorf("unable to checkout %s: %w\nunable to fetch from remote origin: %w", g.BaseRefName, checkoutErr, err)
		}

		if err := w.Checkout(&git.CheckoutOptions{
			Create: false,
			Branch: g.BaseRefName,
		}); err != nil {
			return nil, fmt.Errorf("unable to checkout branch %q: %w", g.BaseRefName, err)
		}
	}

	if err := w.Pull(&git.PullOptions{
		RemoteName: "origin",
		Auth:       g.Auth,
	}); err != nil && err != git.NoErrAlreadyUpToDate {
		return nil, fmt.Errorf("unable to pull from remote origin: %w", err)
	}

	var b *plumbing.ReferenceName

	if branch != "" {
		n := plumbing.ReferenceName(branch)
		b = &n
	} else if g.NewRefName != nil {
		b = g.NewRefName
	}

	if b != nil {
		if err := w.Checkout(&git.CheckoutOptions{
			Create: true,
			Branch: *b,
		}); err != nil {
			return nil, fmt.Errorf("unable to checkout branch %q: %w", *b, err)
		}
	}

	return w, nil
}
