// Package mocks provides centralized mock implementations for testing.
//
// Two styles are used:
//
//   - TestifyMock* types embed mock.Mock and are driven with On/Return and
//     AssertExpectations. They suit store fakes whose call order matters.
//   - Mock* types expose function fields plus default return values. They
//     suit handler tests that only need canned service results.
//
// Usage:
//
//	taskStore := new(mocks.TestifyMockTaskStore)
//	taskStore.On("FindByID", mock.Anything, "t1").Return(task, nil)
//
//	svc := &mocks.MockTaskService{
//	    GetTaskFn: func(ctx context.Context, id string) (*domain.Task, error) {
//	        return task, nil
//	    },
//	}
package mocks
