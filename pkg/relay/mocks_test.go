package relay_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/email"
)

type MockRelay struct {
	mock.Mock
}

func (m *MockRelay) Deliver(ctx context.Context, scope string, list []alerts.Alert) error {
	args := m.Called(ctx, scope, list)
	return args.Error(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context, scope string) ([]alerts.Alert, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]alerts.Alert), args.Error(1)
}

func (m *MockStore) Append(ctx context.Context, scope string, a alerts.Alert) error {
	args := m.Called(ctx, scope, a)
	return args.Error(0)
}

func (m *MockStore) Replace(ctx context.Context, scope string, list []alerts.Alert) error {
	args := m.Called(ctx, scope, list)
	return args.Error(0)
}

func (m *MockStore) Clear(ctx context.Context, scope string) error {
	args := m.Called(ctx, scope)
	return args.Error(0)
}
