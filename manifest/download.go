// seehuhn.de/go/notofonts - build web fonts and CSS for multi-language UIs
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// MaxParallelDownloads limits the number of concurrent HTTP requests
// made by Download.
var MaxParallelDownloads = 4

// Download fetches the source files of all font families into dir.
// Files which already exist are kept, unless force is set.
func (m *Manifest) Download(ctx context.Context, client *http.Client, dir string, force bool) error {
	if client == nil {
		client = http.DefaultClient
	}
	for _, e := range m.Entries {
		for _, w := range Weights {
			if e.URL(w) == "" {
				return fmt.Errorf("%s: no URL for weight %s", e.Name, w)
			}
		}
	}
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxParallelDownloads)
	for _, e := range m.Entries {
		for _, w := range Weights {
			fname := SourcePath(dir, e.Name, w)
			u := e.URL(w)
			if !force {
				if _, err := os.Stat(fname); err == nil {
					tracer().Debugf("%s exists", fname)
					continue
				}
			}
			g.Go(func() error {
				return fetch(ctx, client, u, fname)
			})
		}
	}
	return g.Wait()
}

// fetch downloads url into fname.  The data is written to a temporary
// file first, which is renamed once the download is complete.
func fetch(ctx context.Context, client *http.Client, url, fname string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		tracer().Errorf("download of %s not OK: %v", url, resp.Status)
		return fmt.Errorf("%s: %s", url, resp.Status)
	}

	out, err := os.CreateTemp(filepath.Dir(fname), ".download-*")
	if err != nil {
		return err
	}
	tmpName := out.Name()
	_, err = io.Copy(out, resp.Body)
	err = errors.Join(err, out.Close())
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", url, err)
	}
	err = os.Rename(tmpName, fname)
	if err != nil {
		os.Remove(tmpName)
		return err
	}
	tracer().Infof("downloaded %s", fname)
	return nil
}
