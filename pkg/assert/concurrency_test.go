package assert_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"dbgh/pkg/assert"
	"dbgh/pkg/assert/assertest"
)

func TestConcurrentDispatchAndToggle(t *testing.T) {
	h := newHarness(t)
	a := h.asserter
	const workers, iterations = 8, 200

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < iterations; i++ {
				a.Warning(i < 0, "negative")
			}
			return nil
		})
	}
	g.Go(func() error {
		for i := 0; i < iterations; i++ {
			a.Config().Disable(assert.LevelFatal)
			a.Config().Enable(assert.LevelFatal)
			_, _ = a.Config().SetExecutor(h.rec)
		}
		return nil
	})
	require.NoError(t, g.Wait())

	require.Equal(t, workers*iterations, h.rec.Count(assertest.MethodHandleWarning))
}

func racySite(a *assert.Asserter) {
	a.Debug(false, "racy site")
}

func TestConcurrentIgnoreForever(t *testing.T) {
	h := newHarness(t, 'f')
	a := h.asserter

	var g errgroup.Group
	for w := 0; w < 4; w++ {
		g.Go(func() error {
			for i := 0; i < 50; i++ {
				racySite(a)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	prompts := h.rec.Count(assertest.MethodGetUserInput)
	require.GreaterOrEqual(t, prompts, 1)

	racySite(a)
	require.Equal(t, prompts, h.rec.Count(assertest.MethodGetUserInput))
}
