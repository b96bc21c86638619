package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sysyc/internal/snapshot"
)

// listUnitFiles возвращает отсортированный список всех *.mp файлов в директории
func listUnitFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, snapshot.Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandInputs turns command-line arguments into unit paths: files are kept
// in the given order, directories expand to their sorted *.mp files.
func ExpandInputs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			// missing files surface later as per-unit diagnostics
			out = append(out, arg)
			continue
		}
		if !st.IsDir() {
			out = append(out, arg)
			continue
		}
		files, err := listUnitFiles(arg)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", arg, err)
		}
		out = append(out, files...)
	}
	return out, nil
}
