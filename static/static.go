// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package static registers routes which serve files from a directory.
package static

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/meialau/sayori/web"

	"github.com/spf13/afero"
)

// Register adds one GET mapping to r for every regular file below dir.
// A file at dir/css/site.css is served at prefix/css/site.css. Files are
// read when requested, so edits are picked up but files added later are
// not. A dir which does not exist or is not a directory registers nothing.
//
// Register returns the number of mappings added.
func Register(r *web.Router, fsys afero.Fs, prefix, dir string) (int, error) {
	info, err := fsys.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, nil
	}

	base := prefix
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	n := 0
	err = afero.Walk(fsys, dir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}

		r.Get(path.Clean(base+filepath.ToSlash(rel)), serveFile(fsys, p))
		n++
		return nil
	})
	return n, err
}

func serveFile(fsys afero.Fs, name string) web.Action {
	return func(req *web.Request, resp *web.Response) {
		err := resp.WriteFileFS(fsys, name)
		if err != nil {
			resp.SendStatus(web.StatusNotFound)
		}
	}
}
