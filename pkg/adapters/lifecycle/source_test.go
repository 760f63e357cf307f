package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qlifecycle "github.com/aretw0/quicknote/pkg/adapters/lifecycle"
	"github.com/aretw0/quicknote/pkg/core"
)

func TestSource(t *testing.T) {
	t.Run("Forwards Events Until Input Closes", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		in := make(chan core.Event, 2)
		in <- core.Event{Type: core.EventCreate, Path: "/tmp/notes.json"}
		in <- core.Event{Type: core.EventModify, Path: "/tmp/notes.json"}
		close(in)

		src := qlifecycle.NewSource(in)
		require.NoError(t, src.Start(ctx))

		var got []string
		for e := range src.Events() {
			got = append(got, e.String())
		}
		assert.Equal(t, []string{"CREATE /tmp/notes.json", "MODIFY /tmp/notes.json"}, got)
	})

	t.Run("Merges A Burst Into One Change", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		in := make(chan core.Event)
		src := qlifecycle.NewSource(in, qlifecycle.WithSettle(100*time.Millisecond))
		require.NoError(t, src.Start(ctx))

		in <- core.Event{Type: core.EventCreate, Path: "/tmp/notes.json"}
		in <- core.Event{Type: core.EventModify, Path: "/tmp/notes.json"}
		in <- core.Event{Type: core.EventModify, Path: "/tmp/notes.json"}

		select {
		case e := <-src.Events():
			change, ok := e.(qlifecycle.Change)
			require.True(t, ok)
			assert.Equal(t, 3, change.Events)
			assert.Equal(t, core.EventModify, change.Type)
			assert.Equal(t, "MODIFY /tmp/notes.json (+2)", change.String())
		case <-time.After(2 * time.Second):
			t.Fatal("no change delivered")
		}

		in <- core.Event{Type: core.EventDelete, Path: "/tmp/notes.json"}
		close(in)

		var rest []string
		for e := range src.Events() {
			rest = append(rest, e.String())
		}
		assert.Equal(t, []string{"DELETE /tmp/notes.json"}, rest)
	})

	t.Run("Stops On Cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		src := qlifecycle.NewSource(make(chan core.Event), qlifecycle.WithSettle(time.Second))
		require.NoError(t, src.Start(ctx))
		cancel()

		select {
		case _, ok := <-src.Events():
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("source did not stop")
		}
	})
}
