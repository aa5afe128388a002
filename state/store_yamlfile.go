package state

import (
	"context"
	"os"
)

type YAMLFileStore struct {
	// Path is the path to the YAML file that records the delivery streams
	// managed by firehosegen.
	//
	// A missing file is treated as an empty registry, so the very first
	// apply does not need to create it up front.
	Path string
}

var _ Store = &YAMLFileStore{}

func (s *YAMLFileStore) AddDeliveryStreamName(ctx context.Context, name string) error {
	state, err := s.getState(ctx)
	if err != nil {
		return err
	}

	state.AddDeliveryStreamName(name)

	return s.setState(ctx, state)
}

func (s *YAMLFileStore) DeleteDeliveryStreamName(ctx context.Context, name string) error {
	state, err := s.getState(ctx)
	if err != nil {
		return err
	}

	state.DeleteDeliveryStreamName(name)

	return s.setState(ctx, state)
}

func (s *YAMLFileStore) ListDeliveryStreamNames(ctx context.Context) ([]string, error) {
	state, err := s.getState(ctx)
	if err != nil {
		return nil, err
	}

	return state.DeliveryStreamNames, nil
}

func (s *YAMLFileStore) getState(ctx context.Context) (*State, error) {
	yamlData, err := os.ReadFile(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	ds := &yamlDataStore{Data: yamlData}
	return ds.getState(ctx)
}

func (s *YAMLFileStore) setState(ctx context.Context, state *State) error {
	ds := &yamlDataStore{}
	if err := ds.setState(ctx, state); err != nil {
		return err
	}

	return os.WriteFile(s.Path, ds.Data, 0644)
}
