package generate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"rvcss/archive"
	"rvcss/state"
	"rvcss/style"
)

// loadLibrary reads named declarations from styles source, breakpoint
// modifiers are resolved against current configuration. Source could be a
// single file, a directory with style files or zip archive, possibly with
// path inside of it ("styles.zip/themes/dark"). When several files define
// the same name, the last one in natural order wins.
func loadLibrary(src string, env *state.LocalEnv) (*style.Library, error) {
	log := env.Log.Named("styles")

	lib := style.NewLibrary()
	add := func(name string, data []byte) error {
		part, err := style.Decode(data, env.Cfg.Styles.Breakpoints)
		if err != nil {
			return fmt.Errorf("unable to decode styles from '%s': %w", name, err)
		}
		for _, n := range part.Names() {
			if _, exists := lib.Get(n); exists {
				log.Debug("Style redefined", zap.String("name", n), zap.String("source", name))
			}
			d, _ := part.Get(n)
			lib.Add(n, d)
		}
		env.Rpt.StoreData("input/"+filepath.ToSlash(name), data)
		return nil
	}

	fi, err := os.Stat(src)
	switch {
	case err == nil && fi.IsDir():
		err = walkDir(src, add)
	case err == nil && !isArchive(src):
		var data []byte
		if data, err = os.ReadFile(src); err != nil {
			return nil, fmt.Errorf("unable to read styles: %w", err)
		}
		err = add(filepath.Base(src), data)
	default:
		var zipName, prefix string
		if zipName, prefix, err = splitArchivePath(src); err != nil {
			return nil, err
		}
		log.Debug("Reading styles from archive", zap.String("archive", zipName), zap.String("path", prefix))
		err = archive.Walk(zipName, prefix, func(name string, data []byte) error {
			return add(filepath.Base(zipName)+"/"+name, data)
		})
	}
	if err != nil {
		return nil, err
	}
	if len(lib.Names()) == 0 {
		return nil, fmt.Errorf("no styles found in '%s'", src)
	}
	return lib, nil
}

// walkDir reads style files found under root in natural order.
func walkDir(root string, fn archive.WalkFunc) error {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && archive.IsSource(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to read styles directory: %w", err)
	}
	sort.Sort(natural.StringSlice(files))

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read styles: %w", err)
		}
		rel, _ := filepath.Rel(root, path)
		if err := fn(rel, data); err != nil {
			return err
		}
	}
	return nil
}

func isArchive(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".zip")
}

// splitArchivePath finds existing archive file among leading elements of
// path, the rest becomes path inside of archive.
func splitArchivePath(src string) (string, string, error) {
	head, tail := filepath.Clean(src), ""
	for len(head) > 0 {
		if fi, err := os.Stat(head); err == nil {
			if !fi.Mode().IsRegular() || !isArchive(head) {
				break
			}
			if len(tail) > 0 && !archive.IsSource(tail) {
				tail += "/"
			}
			return head, tail, nil
		}
		dir, file := filepath.Split(head)
		if len(file) == 0 {
			break
		}
		if len(tail) == 0 {
			tail = file
		} else {
			tail = file + "/" + tail
		}
		head = strings.TrimSuffix(dir, string(filepath.Separator))
	}
	return "", "", fmt.Errorf("styles source '%s' not found", src)
}
