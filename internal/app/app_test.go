package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushcron/internal/domain/model"
	"pushcron/internal/jobs"
	"pushcron/internal/usecase"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

func TestUpcomingListsEveryEntry(t *testing.T) {
	catalogue := &jobs.Catalogue{
		Heartbeat: "@weekly",
		Jobs: []model.Job{
			{Name: "morning", App: "ASTRO_VISTA", Schedule: "30 3,9 * * *", MessagePath: "m.json"},
			{Name: "midday", App: "ASTRO_VISTA", Schedule: "30 6,12 * * *", MessagePath: "m.json"},
		},
	}
	a := New(catalogue, nil, nil, nil, nopLogger{}, Settings{})
	require.NoError(t, a.scheduleJobs())

	upcoming := a.Upcoming()
	// no heartbeat use case configured, so only the two jobs are registered
	require.Len(t, upcoming, 2)

	names := []string{upcoming[0].Job, upcoming[1].Job}
	assert.ElementsMatch(t, []string{"morning", "midday"}, names)
	for _, u := range upcoming {
		assert.False(t, u.Next.IsZero())
		assert.Equal(t, 30, u.Next.Minute())
		assert.Equal(t, time.UTC, u.Next.Location())
	}
	assert.False(t, upcoming[1].Next.Before(upcoming[0].Next))
}

func TestScheduleJobsRejectsInvalidSpec(t *testing.T) {
	catalogue := &jobs.Catalogue{
		Jobs: []model.Job{{Name: "broken", App: "X", Schedule: "every tuesday", MessagePath: "m.json"}},
	}
	err := New(catalogue, nil, nil, nil, nopLogger{}, Settings{}).scheduleJobs()
	assert.ErrorContains(t, err, "schedule job broken")
}

func TestRunStopsOnCancel(t *testing.T) {
	catalogue := &jobs.Catalogue{
		Jobs: []model.Job{{Name: "morning", App: "ASTRO_VISTA", Schedule: "30 3,9 * * *", MessagePath: "m.json"}},
	}
	a := New(catalogue, nil, nil, nil, nopLogger{}, Settings{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

type staticCredentials struct{}

func (staticCredentials) Credentials(app string) (model.Credentials, error) {
	return model.Credentials{App: app, AppID: "app-id", APIKey: "api-key"}, nil
}

type staticMessages struct{}

func (staticMessages) Load(_ context.Context, path string) (*model.Notification, error) {
	return &model.Notification{Name: path, Message: "hello", Segment: model.DefaultSegment}, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	sent      map[string]int
	deadlines []time.Time
}

func (n *recordingNotifier) Send(ctx context.Context, _ model.Credentials, notification model.Notification) (*model.Delivery, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sent == nil {
		n.sent = make(map[string]int)
	}
	n.sent[notification.Name]++
	if deadline, ok := ctx.Deadline(); ok {
		n.deadlines = append(n.deadlines, deadline)
	}
	return &model.Delivery{ID: "notif-" + notification.Name, Recipients: 1}, nil
}

func (n *recordingNotifier) snapshot() (map[string]int, []time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	sent := make(map[string]int, len(n.sent))
	for k, v := range n.sent {
		sent[k] = v
	}
	return sent, append([]time.Time(nil), n.deadlines...)
}

type memoryHistory struct {
	mu   sync.Mutex
	runs []model.Run
}

func (h *memoryHistory) Record(_ context.Context, run model.Run) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = append(h.runs, run)
	return nil
}

func (h *memoryHistory) Recent(_ context.Context, limit int) ([]model.Run, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]model.Run(nil), h.runs[:min(limit, len(h.runs))]...), nil
}

type memoryCounter struct{ value int }

func (c *memoryCounter) Increment(context.Context) (int, error) {
	c.value++
	return c.value, nil
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestRunNowDeliversEveryJobAndServesHealth(t *testing.T) {
	catalogue := &jobs.Catalogue{
		Heartbeat: "0 0 1 1 *",
		Jobs: []model.Job{
			{Name: "morning", App: "ASTRO_VISTA", Schedule: "0 0 1 1 *", MessagePath: "morning.json"},
			{Name: "midday", App: "ASTRO_VISTA", Schedule: "0 0 1 1 *", MessagePath: "midday.json"},
		},
	}
	notifier := &recordingNotifier{}
	history := &memoryHistory{}
	delivery := usecase.NewDelivery(staticCredentials{}, staticMessages{}, notifier, history, nil, nopLogger{})
	heartbeat := usecase.NewHeartbeat(&memoryCounter{}, nopLogger{})
	addr := freeAddr(t)

	a := New(catalogue, delivery, heartbeat, history, nopLogger{}, Settings{
		JobTimeout: time.Minute,
		RunNow:     true,
		ListenAddr: addr,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	started := time.Now()
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	var body struct {
		Runs []model.Run `json:"runs"`
	}
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/runs")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK && json.NewDecoder(resp.Body).Decode(&body) == nil
	}, 3*time.Second, 20*time.Millisecond)

	sent, deadlines := notifier.snapshot()
	assert.Equal(t, map[string]int{"morning.json": 1, "midday.json": 1}, sent)
	require.Len(t, deadlines, 2)
	for _, d := range deadlines {
		assert.WithinDuration(t, started.Add(time.Minute), d, 5*time.Second)
	}
	require.Len(t, body.Runs, 2)
	for _, run := range body.Runs {
		assert.Equal(t, model.RunSent, run.Status)
	}

	names := make([]string, 0, 3)
	for _, u := range a.Upcoming() {
		names = append(names, u.Job)
	}
	assert.ElementsMatch(t, []string{"morning", "midday", heartbeatEntry}, names)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(8 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
