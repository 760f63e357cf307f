package fs

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// TempFilePrefix names the scratch file a save writes before it replaces the store.
const TempFilePrefix = ".quicknote-tmp-"

// rename is swapped out in tests to simulate a crash between write and rename.
var rename = os.Rename

// writeFileAtomic replaces filename with data.
//
// The bytes go to a scratch file in the same directory, which is synced and
// then renamed over filename. Until the rename succeeds filename keeps its
// previous content, and the scratch file is removed on every failure.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()

	if err := fillTemp(tmp, data, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to replace %s", filename)
	}

	syncDir(dir)
	return nil
}

// fillTemp writes and syncs data, sets perm and closes f.
func fillTemp(f *os.File, data []byte, perm os.FileMode) error {
	if err := f.Chmod(perm); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to chmod temp file")
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to write temp file")
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to sync temp file")
	}
	return errors.Wrap(f.Close(), "failed to close temp file")
}

// syncDir persists the rename. Some platforms cannot sync a directory; the
// store is already consistent by then, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	d.Sync()
	d.Close()
}
