package render

import (
	"context"
	"path/filepath"

	"github.com/flowtide/firehosegen/firehose"
	"github.com/flowtide/firehosegen/provisioner/plugin"
	"github.com/flowtide/firehosegen/render"
)

// Provisioner renders the resolved document to files, for an external
// provisioning engine to pick up. Applying and destroying are no-ops:
// once the files are committed, the run is the engine's business.
type Provisioner struct {
	Document *firehose.Document

	// Dir is the directory within the store the documents are written
	// to, e.g. the path configured on the gitops repository.
	Dir string
}

func (p *Provisioner) Render(ctx context.Context, dir string) (*plugin.RenderResult, error) {
	name := p.Document.DeliveryStream.Name

	y, err := p.Document.YAML()
	if err != nil {
		return nil, err
	}

	j, err := p.Document.JSON()
	if err != nil {
		return nil, err
	}

	files := []render.File{
		{Path: filepath.Join(p.Dir, name+".yaml"), Content: string(y)},
		{Path: filepath.Join(p.Dir, name+".json"), Content: string(j)},
	}

	wrote, err := render.ToDir(dir, files...)
	if err != nil {
		return nil, err
	}

	return &plugin.RenderResult{
		AddedOrModifiedFiles: wrote,
	}, nil
}

func (p *Provisioner) Apply(ctx context.Context, r *plugin.RenderResult) (*plugin.Result, error) {
	return &plugin.Result{}, nil
}

func (p *Provisioner) Destroy(ctx context.Context) (*plugin.Result, error) {
	return &plugin.Result{}, nil
}
