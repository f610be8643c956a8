package services

import "context"

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	store Pinger
}

func NewHealthService(store Pinger) *HealthService {
	return &HealthService{store: store}
}

func (s *HealthService) Get() error {
	if s.store == nil {
		return nil
	}
	return s.store.Ping(context.Background())
}
