package pubsub

import "context"

// MockPublisher records published packs in memory.
type MockPublisher struct {
	Packs map[string][]*Pack
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Packs: make(map[string][]*Pack)}
}

func (p *MockPublisher) Publish(ctx context.Context, topic string, pack *Pack) error {
	p.Packs[topic] = append(p.Packs[topic], pack)
	return nil
}

func (p *MockPublisher) Stop(ctx context.Context) error {
	return nil
}
