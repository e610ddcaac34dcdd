package mock

import (
	"context"

	"github.com/pagerow/pagerow"
)

var _ pagerow.RunService = (*RunService)(nil)

// RunService is a mock implementation of pagerow.RunService.
type RunService struct {
	CreateRunFn func(ctx context.Context, run *pagerow.Run) error
	FindRunsFn  func(ctx context.Context, filter pagerow.RunFilter) ([]*pagerow.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *pagerow.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRuns(ctx context.Context, filter pagerow.RunFilter) ([]*pagerow.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
