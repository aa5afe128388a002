package plugin

import (
	"context"
)

// Provisioner is the collaborator that turns a resolved document into
// reality. The builtin implementation talks to the AWS API directly;
// any other provisioning engine is reached by rendering to a gitops
// repository it watches.
type Provisioner interface {
	Apply(ctx context.Context, r *RenderResult) (*Result, error)
	Destroy(ctx context.Context) (*Result, error)
	// Render renders the provisioner's configuration to the directory.
	//
	// The provisioner framework will prepare the directory for the
	// provisioner by cloning the gitops repository, or by creating a
	// local directory, and may chdir to it.
	//
	// Nevertheless, the dir argument is the directory that the
	// provisioner should render the configuration to.
	Render(ctx context.Context, dir string) (*RenderResult, error)
}

type RenderResult struct {
	AddedOrModifiedFiles []string
	DeletedFiles         []string
}
