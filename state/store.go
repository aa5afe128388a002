// Package state records which delivery streams firehosegen manages.
// The registry is read on destroy to figure out what exists, and
// updated whenever an apply succeeds.
// It is stored as a YAML file, by default next to the configuration.
package state

import (
	"context"
	"os"

	"github.com/flowtide/firehosegen/envvar"
)

// NewStore returns a Store implementation based on the environment
// variables. If envvar.StateFilePath is set, the registry lives there;
// otherwise it lives in firehosegen.state.yaml in the working directory.
func NewStore() Store {
	path := os.Getenv(envvar.StateFilePath)
	if path == "" {
		path = "firehosegen.state.yaml"
	}

	return &YAMLFileStore{
		Path: path,
	}
}

type Store interface {
	AddDeliveryStreamName(ctx context.Context, name string) error
	DeleteDeliveryStreamName(ctx context.Context, name string) error
	ListDeliveryStreamNames(ctx context.Context) ([]string, error)
}

type datastore interface {
	load(context.Context, []byte) (*State, error)
	getState(context.Context) (*State, error)
	setState(context.Context, *State) error
	getData() []byte
}
