package config

import "fmt"

// Delegate describes where the resolved document is delegated to,
// instead of being applied by the builtin provisioner.
type Delegate struct {
	Git *Git `yaml:"git" toml:"git"`

	// PullRequest specifies whether the gitops repository is updated via
	// pull request.
	// If nil, firehosegen pushes directly to the branch that contains the
	// gitops config.
	// If set, firehosegen creates a feature branch, pushes to it, and
	// creates a pull request. The Git.Branch field serves as the base
	// branch of the pull request.
	PullRequest *PullRequest `yaml:"pullRequest" toml:"pull_request"`
}

// Git identifies the gitops repository that contains the provisioning
// documents.
type Git struct {
	// Repo is either OWNER/NAME or the URL of the git repository.
	Repo string `yaml:"repo" toml:"repo"`

	// Branch is the branch that contains the provisioning documents.
	Branch string `yaml:"branch" toml:"branch"`

	// Path is the directory within the repository the documents are
	// written to.
	Path string `yaml:"path" toml:"path"`

	// Push specifies whether the commit is pushed to the remote.
	Push bool `yaml:"push" toml:"push"`
}

type PullRequest struct{}

func (d *Delegate) Validate() error {
	if d.Git == nil {
		return fmt.Errorf("gitOps.git is required")
	}

	if d.Git.Repo == "" {
		return fmt.Errorf("gitOps.git.repo is required")
	}

	return nil
}
