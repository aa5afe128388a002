package provisioner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/flowtide/firehosegen/config"
	"github.com/flowtide/firehosegen/provisioner/plugin"
	"github.com/flowtide/firehosegen/store"
)

func newDelegatableProvisioner(name string, g *config.Delegate, p plugin.Provisioner) delegatableProvisioner {
	return delegatableProvisioner{
		name:        name,
		Delegate:    g,
		Provisioner: p,
	}
}

// delegatableProvisioner is a provisioner whose rendered output can be
// delivered in any of the following 3 ways:
// - git commits to the repo and the branch that contain the gitops configs
// - pull-requests to the repo and the branch that contain the gitops configs
// - local file changes followed by a direct run of the embedded Provisioner
//
// The embedded Provisioner does the last one, while the rest is done by
// the store the rendered files are committed to.
type delegatableProvisioner struct {
	name string

	*config.Delegate

	plugin.Provisioner
}

// prepare renders the provisioner's files into the store.
// The passed store.Store is linked to either a local directory or the
// specified directory in the clone of the gitops repository.
func (p *delegatableProvisioner) prepare(ctx context.Context, ds store.Store) (*plugin.RenderResult, error) {
	return ds.Transact(func(path string) (*plugin.RenderResult, error) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}

		defer func() {
			if err := os.Chdir(wd); err != nil {
				panic(err)
			}
		}()

		// Render wants the current working directory to be the directory
		// that the provisioner should render the configuration to.
		if err := os.Chdir(path); err != nil {
			return nil, fmt.Errorf("chdir to %s: %w", path, err)
		}

		r, err := p.Provisioner.Render(ctx, ".")
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}

		return r, nil
	})
}

func (p *delegatableProvisioner) Apply(ctx context.Context) (*Result, error) {
	return p.run(ctx, "apply", func(r *plugin.RenderResult) (*plugin.Result, error) {
		return p.Provisioner.Apply(ctx, r)
	})
}

func (p *delegatableProvisioner) Destroy(ctx context.Context) (*Result, error) {
	return p.run(ctx, "destroy", func(_ *plugin.RenderResult) (*plugin.Result, error) {
		return p.Provisioner.Destroy(ctx)
	})
}

func (p *delegatableProvisioner) run(ctx context.Context, op string, fn func(*plugin.RenderResult) (*plugin.Result, error)) (*Result, error) {
	ds := store.Init(p.name, time.Now(), p.Delegate)

	renderRes, err := p.prepare(ctx, ds)
	if err != nil {
		return nil, err
	}

	if err := ds.Commit(ctx, fmt.Sprintf("firehosegen %s %s", op, p.name), "n/a"); err != nil {
		return nil, err
	}

	// Once the files are committed to a git branch or a pull request,
	// the rest of the run belongs to the gitops repository's pipeline.
	if p.Delegate != nil && (p.Delegate.Git != nil || p.Delegate.PullRequest != nil) {
		return &Result{}, nil
	}

	pluginRes, err := fn(renderRes)
	if err != nil {
		return nil, err
	}

	return &Result{
		Result: *pluginRes,
	}, nil
}
