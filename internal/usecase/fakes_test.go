package usecase

import (
	"context"
	"errors"
	"sync"

	"pushcron/internal/domain/model"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

type fakeCredentials struct {
	creds map[string]model.Credentials
}

func (f fakeCredentials) Credentials(app string) (model.Credentials, error) {
	c, ok := f.creds[app]
	if !ok {
		return model.Credentials{}, errors.New("credentials not found: " + app)
	}
	return c, nil
}

type fakeMessages struct {
	notification model.Notification
	err          error
}

func (f fakeMessages) Load(context.Context, string) (*model.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	n := f.notification
	return &n, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	sent     []model.Notification
	delivery *model.Delivery
	err      error
}

func (f *fakeNotifier) Send(_ context.Context, _ model.Credentials, n model.Notification) (*model.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return f.delivery, f.err
}

type fakeHistory struct {
	runs []model.Run
}

func (f *fakeHistory) Record(_ context.Context, run model.Run) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeHistory) Recent(context.Context, int) ([]model.Run, error) {
	return f.runs, nil
}

type fakeAlerter struct {
	alerts []model.Alert
	err    error
}

func (f *fakeAlerter) Alert(_ context.Context, a model.Alert) error {
	f.alerts = append(f.alerts, a)
	return f.err
}

type fakeCounter struct {
	value int
	err   error
}

func (f *fakeCounter) Increment(context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.value++
	return f.value, nil
}
