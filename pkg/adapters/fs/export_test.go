package fs

// SetRename replaces the rename step of atomic writes until restore is called.
func SetRename(fn func(oldpath, newpath string) error) (restore func()) {
	prev := rename
	rename = fn
	return func() { rename = prev }
}
