package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tracebench/internal/ctxlog"
	"github.com/vk/tracebench/internal/testutil"
)

// parseDoc is a test helper around Parse with a fixed filename.
func parseDoc(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse([]byte(src), "settings.json")
	require.NoError(t, err)
	return doc
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("invalid JSON is rejected", func(t *testing.T) {
		_, err := Parse([]byte(`{"time": `), "broken.json")
		require.Error(t, err)
		assert.ErrorContains(t, err, "broken.json")
	})

	t.Run("top level must be an object", func(t *testing.T) {
		_, err := Parse([]byte(`[1, 2, 3]`), "array.json")
		assert.Error(t, err)
	})
}

func TestDocumentInt(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `{"time": 60, "q_depth": "32", "device": "sdb"}`)

	t.Run("number converts", func(t *testing.T) {
		n, err := doc.Int("time")
		require.NoError(t, err)
		assert.Equal(t, 60, n)
	})

	t.Run("numeric string converts", func(t *testing.T) {
		n, err := doc.Int("q_depth")
		require.NoError(t, err)
		assert.Equal(t, 32, n)
	})

	t.Run("absent key reports ErrKeyNotFound", func(t *testing.T) {
		_, err := doc.Int("nr_thread")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrKeyNotFound))
	})

	t.Run("non-numeric value is a distinct failure", func(t *testing.T) {
		_, err := doc.Int("device")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrKeyNotFound))
	})
}

func TestDocumentStr(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `{"scheduler": "bfq", "quoted": "\"cgroup-1\"", "weight": 500, "empty": null}`)

	t.Run("string converts", func(t *testing.T) {
		s, err := doc.Str("scheduler")
		require.NoError(t, err)
		assert.Equal(t, "bfq", s)
	})

	t.Run("stray quotes are stripped", func(t *testing.T) {
		s, err := doc.Str("quoted")
		require.NoError(t, err)
		assert.Equal(t, "cgroup-1", s)
	})

	t.Run("number converts to its decimal form", func(t *testing.T) {
		s, err := doc.Str("weight")
		require.NoError(t, err)
		assert.Equal(t, "500", s)
	})

	t.Run("explicit null counts as absent", func(t *testing.T) {
		_, err := doc.Str("empty")
		assert.True(t, errors.Is(err, ErrKeyNotFound))
	})
}

func TestDocumentHas(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `{"weight": 100, "wss": null}`)
	assert.True(t, doc.Has("weight"))
	assert.False(t, doc.Has("wss"), "null value counts as absent")
	assert.False(t, doc.Has("iosize"))
}

func TestDocumentTask(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, testutil.SettingsJSON(testutil.SettingsParams{
		Tasks: []string{
			`{"cgroup_id": "cgroup-1", "trace_data_path": "rand_read"}`,
			`{"cgroup_id": "cgroup-2", "trace_data_path": "seq_write", "q_depth": 64}`,
		},
	}))

	t.Run("count matches the array", func(t *testing.T) {
		n, err := doc.TaskCount()
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("element is addressable and typed", func(t *testing.T) {
		task, err := doc.Task(1)
		require.NoError(t, err)

		id, err := task.Str("cgroup_id")
		require.NoError(t, err)
		assert.Equal(t, "cgroup-2", id)

		depth, err := task.Int("q_depth")
		require.NoError(t, err)
		assert.Equal(t, 64, depth)
	})

	t.Run("index out of range is distinguishable", func(t *testing.T) {
		_, err := doc.Task(2)
		require.Error(t, err)

		var oob *IndexOutOfRangeError
		require.True(t, errors.As(err, &oob))
		assert.Equal(t, 2, oob.Index)
		assert.Equal(t, 2, oob.Len)
		assert.False(t, errors.Is(err, ErrKeyNotFound))
	})

	t.Run("missing array reports ErrKeyNotFound", func(t *testing.T) {
		bare := parseDoc(t, `{"time": 60}`)
		_, err := bare.Task(0)
		assert.True(t, errors.Is(err, ErrKeyNotFound))

		_, err = bare.TaskCount()
		assert.True(t, errors.Is(err, ErrKeyNotFound))
	})

	t.Run("non-array task_option is rejected", func(t *testing.T) {
		bad := parseDoc(t, `{"task_option": 12}`)
		_, err := bad.Task(0)
		require.Error(t, err)
		assert.ErrorContains(t, err, "not an array")
	})
}

func TestLoaderLoad(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.WithLogger(t.Context(), testutil.DiscardLogger())

	t.Run("round trip through a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"time": 45}`), 0600))

		doc, err := NewLoader().Load(ctx, path)
		require.NoError(t, err)

		n, err := doc.Int("time")
		require.NoError(t, err)
		assert.Equal(t, 45, n)
	})

	t.Run("missing file surfaces the read error", func(t *testing.T) {
		_, err := NewLoader().Load(ctx, filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to read settings file")
	})
}
