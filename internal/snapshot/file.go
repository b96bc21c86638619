package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
)

// Ext is the conventional snapshot file extension.
const Ext = ".mp"

// WriteFile stores u at path, replacing it atomically.
func WriteFile(path string, u *ast.Unit) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = Encode(f, u); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// ReadFile loads a unit written by WriteFile. The returned diagnostic, if
// any, is bound to path.
func ReadFile(path string) (*ast.Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, diag.Errorf(diag.IOSnapshotRead, "%v", err).InUnit(path)
	}
	defer func() {
		_ = f.Close()
	}()

	u, err := Decode(f)
	if err != nil {
		var d *diag.Diagnostic
		if errors.As(err, &d) {
			return nil, d.InUnit(path)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return u, nil
}
