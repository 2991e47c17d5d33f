package counter_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushcron/internal/adapter/counter"
)

func TestIncrement(t *testing.T) {
	testCases := []struct {
		Name     string
		Initial  *string
		Expected int
	}{
		{Name: "missing_file", Initial: nil, Expected: 1},
		{Name: "empty_file", Initial: ptr(""), Expected: 1},
		{Name: "garbage", Initial: ptr("not a number"), Expected: 1},
		{Name: "existing_value", Initial: ptr("41\n"), Expected: 42},
		{Name: "surrounding_whitespace", Initial: ptr("  7  "), Expected: 8},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "keep_live.txt")
			if tc.Initial != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tc.Initial), 0o644))
			}

			got, err := counter.NewFile(path).Increment(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, got)

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, strconv.Itoa(tc.Expected)+"\n", string(raw))
		})
	}
}

func TestIncrementSerialisesConcurrentCallers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keep_live.txt")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := counter.NewFile(path).Increment(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "8\n", string(raw))
}

func ptr(s string) *string { return &s }
