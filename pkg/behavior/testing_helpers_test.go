package behavior

import "context"

// stubHandle is a minimal Handle used across this package's tests.
type stubHandle struct {
	pressResp    int
	releaseResp  int
	pressErr     error
	convertErr   error
	convertParam *uint32
	ready        *bool
}

func (s *stubHandle) Pressed(_ context.Context, _ Binding, _ Event) (int, error) {
	if s.pressErr != nil {
		return 0, s.pressErr
	}
	return s.pressResp, nil
}

func (s *stubHandle) Released(_ context.Context, _ Binding, _ Event) (int, error) {
	return s.releaseResp, nil
}

func (s *stubHandle) ConvertCentralStateDependentParams(_ context.Context, b Binding) (Binding, error) {
	if s.convertErr != nil {
		return Binding{}, s.convertErr
	}
	if s.convertParam != nil {
		b.Param1 = *s.convertParam
	}
	return b, nil
}

func (s *stubHandle) Ready() bool {
	if s.ready == nil {
		return true
	}
	return *s.ready
}
