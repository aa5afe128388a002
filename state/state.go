package state

// State is the registry of delivery streams managed by firehosegen.
type State struct {
	DeliveryStreamNames []string `yaml:"deliveryStreamNames"`
}

func (s *State) AddDeliveryStreamName(name string) {
	for _, n := range s.DeliveryStreamNames {
		if n == name {
			return
		}
	}

	s.DeliveryStreamNames = append(s.DeliveryStreamNames, name)
}

func (s *State) DeleteDeliveryStreamName(name string) {
	var names []string
	for _, n := range s.DeliveryStreamNames {
		if n != name {
			names = append(names, n)
		}
	}
	s.DeliveryStreamNames = names
}
