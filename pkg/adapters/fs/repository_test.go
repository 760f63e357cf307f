package fs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quicknote/pkg/adapters/fs"
	"github.com/aretw0/quicknote/pkg/core"
)

// setupRepo helps create a repository for testing.
// It returns the repository and the path of the store file.
func setupRepo(t *testing.T, name string, opts ...func(*fs.Config)) (*fs.Repository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", name)
	cfg := fs.Config{Path: path}
	for _, opt := range opts {
		opt(&cfg)
	}

	repo := fs.NewRepository(cfg)
	require.NoError(t, repo.Initialize(context.Background()))
	return repo, path
}

func sampleNotes() []core.Note {
	return []core.Note{
		{ID: "a1b2c3d4", Text: "buy milk", CreatedAt: "2026-10-16T09:00:00Z", Tags: []string{"errand"}, Priority: 2},
		{ID: "e5f6a7b8", Text: "café <review> & notes", CreatedAt: "2026-10-15T18:30:00+02:00", Done: true, Tags: []string{}, Priority: 0},
		{ID: "c9d0e1f2", Text: "call mom", CreatedAt: "2026-10-14T08:00:00Z", Tags: []string{"home", "family"}, Priority: 3},
	}
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Parent Directory", func(t *testing.T) {
		_, path := setupRepo(t, "notes.json")

		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err), "store file must not be created by Initialize")
	})

	t.Run("Fails With Empty Path", func(t *testing.T) {
		repo := fs.NewRepository(fs.Config{})
		assert.Error(t, repo.Initialize(context.Background()))
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing File Is Empty", func(t *testing.T) {
		var reported []error
		repo, _ := setupRepo(t, "notes.json", func(c *fs.Config) {
			c.ErrorHandler = func(err error) { reported = append(reported, err) }
		})

		notes, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, notes)
		assert.NotNil(t, notes)
		assert.Empty(t, reported)
	})

	t.Run("Corrupt File Degrades To Empty", func(t *testing.T) {
		var reported []error
		var logs bytes.Buffer
		repo, path := setupRepo(t, "notes.json", func(c *fs.Config) {
			c.ErrorHandler = func(err error) { reported = append(reported, err) }
			c.Logger = slog.New(slog.NewTextHandler(&logs, nil))
		})
		require.NoError(t, os.WriteFile(path, []byte(`{"not": "a list"`), 0600))

		notes, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, notes)

		require.Len(t, reported, 1)
		assert.True(t, errors.Is(reported[0], core.ErrStoreCorrupt))
		assert.Contains(t, logs.String(), "level=WARN")
	})

	t.Run("Invalid Records Are Skipped", func(t *testing.T) {
		var reported []error
		repo, path := setupRepo(t, "notes.json", func(c *fs.Config) {
			c.ErrorHandler = func(err error) { reported = append(reported, err) }
		})
		doc := `[
  {"id": "ok000001", "text": "fine", "created_at": "2026-01-01T00:00:00Z"},
  {"text": "no id", "created_at": "2026-01-01T00:00:00Z"},
  {"id": "bad00002", "text": "bad priority", "created_at": "2026-01-01T00:00:00Z", "priority": 9},
  {"id": "bad00003", "text": "wrong type", "created_at": "2026-01-01T00:00:00Z", "priority": "high"},
  {"id": "ok000001", "text": "duplicate", "created_at": "2026-01-01T00:00:00Z"},
  {"id": "ok000004", "text": "extra field", "created_at": "2026-01-01T00:00:00Z", "color": "red", "tags": [" a ", ""]}
]`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

		notes, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "ok000001", notes[0].ID)
		assert.Equal(t, "fine", notes[0].Text)
		assert.Equal(t, []string{}, notes[0].Tags)
		assert.Equal(t, "ok000004", notes[1].ID)
		assert.Equal(t, []string{"a"}, notes[1].Tags)

		assert.Len(t, reported, 4)
		for _, err := range reported {
			assert.True(t, errors.Is(err, core.ErrStoreCorrupt))
		}
	})

	t.Run("Reads Offset-less Timestamps And Null Tags", func(t *testing.T) {
		repo, path := setupRepo(t, "notes.json")
		doc := `[
  {
    "id": "9f1c2b3a",
    "text": "süt al",
    "created_at": "2025-05-01T10:30:00",
    "done": false,
    "tags": null,
    "priority": 2
  }
]`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

		notes, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "süt al", notes[0].Text)
		assert.Equal(t, []string{}, notes[0].Tags)
		_, err = notes[0].Created()
		assert.NoError(t, err)
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		repo, _ := setupRepo(t, "notes.json")
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.Load(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSave(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"notes.json", "notes.yaml", "notes.yml"} {
		t.Run("Round Trip "+name, func(t *testing.T) {
			repo, _ := setupRepo(t, name)
			want := sampleNotes()

			require.NoError(t, repo.Save(ctx, want))

			got, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	t.Run("Empty Collection", func(t *testing.T) {
		repo, path := setupRepo(t, "notes.json")
		require.NoError(t, repo.Save(ctx, nil))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("Writes Every Field", func(t *testing.T) {
		repo, path := setupRepo(t, "notes.json")
		require.NoError(t, repo.Save(ctx, sampleNotes()[:1]))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		for _, field := range []string{`"id"`, `"text"`, `"created_at"`, `"done"`, `"tags"`, `"priority"`} {
			assert.Contains(t, string(data), field)
		}
	})

	t.Run("Failure Before Rename Keeps Previous Store", func(t *testing.T) {
		repo, path := setupRepo(t, "notes.json")
		require.NoError(t, repo.Save(ctx, sampleNotes()))
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		restore := fs.SetRename(func(oldpath, newpath string) error {
			return errors.New("simulated crash")
		})
		defer restore()

		err = repo.Save(ctx, sampleNotes()[:1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrIO), "expected ErrIO, got %v", err)

		var ioErr *core.IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, path, ioErr.Path)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after, "store must be byte-identical after a failed save")

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), fs.TempFilePrefix), "leftover temp file %s", e.Name())
		}
	})

	t.Run("Unwritable Directory Is An IOError", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits are not enforced here")
		}
		repo, path := setupRepo(t, "notes.json")
		dir := filepath.Dir(path)
		require.NoError(t, os.Chmod(dir, 0500))
		t.Cleanup(func() { os.Chmod(dir, 0755) })

		err := repo.Save(ctx, sampleNotes())
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrIO))
		assert.True(t, errors.Is(err, os.ErrPermission))
	})

	t.Run("Read Only", func(t *testing.T) {
		repo, path := setupRepo(t, "notes.json", func(c *fs.Config) { c.ReadOnly = true })

		err := repo.Save(ctx, sampleNotes())
		assert.True(t, errors.Is(err, core.ErrReadOnly))

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Keeps Existing File Mode", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("file modes are not preserved on windows")
		}
		repo, path := setupRepo(t, "notes.json")
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0640))
		require.NoError(t, os.Chmod(path, 0640))

		require.NoError(t, repo.Save(ctx, sampleNotes()))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
	})
}

func TestProperty_RoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	repo, _ := setupRepo(t, "notes.json")
	ctx := context.Background()

	properties.Property("save then load yields the same notes", prop.ForAll(
		func(texts []string, priority int, done bool) bool {
			notes := make([]core.Note, 0, len(texts))
			for i, text := range texts {
				notes = append(notes, core.Note{
					ID:        core.NewID() + string(rune('a'+i%26)),
					Text:      "n" + text,
					CreatedAt: "2026-10-16T09:00:00Z",
					Done:      done,
					Tags:      core.NormalizeTags([]string{text}),
					Priority:  priority,
				})
			}
			if err := repo.Save(ctx, notes); err != nil {
				return false
			}
			got, err := repo.Load(ctx)
			if err != nil {
				return false
			}
			return slices.EqualFunc(notes, got, func(a, b core.Note) bool {
				return a.ID == b.ID && a.Text == b.Text && a.CreatedAt == b.CreatedAt &&
					a.Done == b.Done && a.Priority == b.Priority && slices.Equal(a.Tags, b.Tags)
			})
		},
		gen.SliceOf(gen.AlphaString()),
		gen.IntRange(core.PriorityNone, core.PriorityHighest),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
