package fileproc

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFiles(t *testing.T) {
	files := []string{"a.txt", "b.txt", "c.txt"}

	results, errs := MapFiles(context.Background(), files, func(path string) (string, error) {
		return strings.ToUpper(path), nil
	})

	require.Nil(t, errs)
	sort.Strings(results)
	assert.Equal(t, []string{"A.TXT", "B.TXT", "C.TXT"}, results)
}

func TestMapFilesEmpty(t *testing.T) {
	results, errs := MapFiles(context.Background(), nil, func(path string) (int, error) {
		return 0, nil
	})

	assert.Nil(t, results)
	assert.Nil(t, errs)
}

func TestMapFilesCollectsErrors(t *testing.T) {
	files := []string{"good.txt", "bad.txt", "fine.txt"}
	boom := errors.New("boom")

	results, errs := MapFiles(context.Background(), files, func(path string) (string, error) {
		if path == "bad.txt" {
			return "", boom
		}
		return path, nil
	})

	require.NotNil(t, errs)
	assert.True(t, errs.HasErrors())
	assert.Len(t, errs.Errors, 1)
	assert.Equal(t, "bad.txt", errs.Errors[0].Path)
	assert.Len(t, results, 2)
	assert.Contains(t, errs.Error(), "boom")
}

func TestMapFilesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := []string{"a.txt", "b.txt"}
	results, errs := MapFiles(ctx, files, func(path string) (string, error) {
		return path, nil
	})

	// Everything submitted after cancellation fails with the context error.
	require.NotNil(t, errs)
	assert.True(t, errs.HasErrors())
	assert.Empty(t, results)
	for _, pe := range errs.Errors {
		assert.ErrorIs(t, pe.Err, context.Canceled)
	}
}

func TestMapFilesWithProgress(t *testing.T) {
	files := []string{"a.txt", "b.txt", "c.txt", "d.txt"}
	var ticks atomic.Int64

	results, errs := MapFilesWithProgress(context.Background(), files, func(path string) (int, error) {
		if path == "c.txt" {
			return 0, errors.New("skip")
		}
		return len(path), nil
	}, func() {
		ticks.Add(1)
	})

	// Progress fires for failures too.
	assert.EqualValues(t, 4, ticks.Load())
	assert.Len(t, results, 3)
	require.NotNil(t, errs)
	assert.Len(t, errs.Errors, 1)
}

func TestProcessingErrorsMessages(t *testing.T) {
	errs := &ProcessingErrors{}
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "no errors", errs.Error())

	errs.Add("one.txt", errors.New("first"))
	assert.Equal(t, "one.txt: first", errs.Error())

	errs.Add("two.txt", errors.New("second"))
	assert.Contains(t, errs.Error(), "2 files failed")
	assert.Nil(t, errs.Unwrap())
}
