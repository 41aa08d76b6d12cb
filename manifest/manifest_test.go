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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const treeJSON = `{
  "sha": "abc123",
  "truncated": false,
  "tree": [
    {"path": "hinted", "type": "tree"},
    {"path": "hinted/ttf/NotoSans/NotoSans-Regular.ttf", "type": "blob"},
    {"path": "hinted/ttf/NotoSans/NotoSans-Bold.ttf", "type": "blob"},
    {"path": "hinted/ttf/NotoSans/NotoSans-Italic.ttf", "type": "blob"},
    {"path": "hinted/ttf/NotoSansArabic/NotoSansArabic-Regular.ttf", "type": "blob"},
    {"path": "hinted/ttf/NotoSansArabic/NotoSansArabic-Bold.ttf", "type": "blob"},
    {"path": "hinted/ttf/NotoSansArabicUI/NotoSansArabicUI-Regular.ttf", "type": "blob"},
    {"path": "hinted/ttf/NotoSansArabicUI/NotoSansArabicUI-Bold.ttf", "type": "blob"},
    {"path": "hinted/ttf/NotoSansAdlam/NotoSansAdlam-Regular.ttf", "type": "blob"},
    {"path": "hinted/ttf/NotoSerif/NotoSerif-Regular.ttf", "type": "blob"},
    {"path": "hinted/ttf/NotoSerif/NotoSerif-Bold.ttf", "type": "blob"},
    {"path": "unhinted/ttf/NotoSansBengali/NotoSansBengali-Regular.ttf", "type": "blob"}
  ]
}`

func TestUpdate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notofonts.manifest")
	defer teardown()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/git/trees/v2.0" || r.URL.Query().Get("recursive") != "1" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, treeJSON)
	}))
	defer srv.Close()

	repo := Repository{API: srv.URL + "/api", Raw: srv.URL + "/raw"}
	m, err := repo.Update(context.Background(), srv.Client(), "v2.0")
	require.NoError(t, err)

	require.Equal(t, []string{"NotoSans", "NotoSansArabic"}, m.Families())
	assert.Equal(t, srv.URL+"/raw/v2.0/hinted/ttf/NotoSans/NotoSans-Regular.ttf", m.Entries[0].Regular)
	assert.Equal(t, srv.URL+"/raw/v2.0/hinted/ttf/NotoSansArabic/NotoSansArabic-Bold.ttf", m.Entries[1].Bold)

	_, err = repo.Update(context.Background(), srv.Client(), "missing")
	assert.Error(t, err)
}

func TestUpdateEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha": "x", "tree": []}`)
	}))
	defer srv.Close()

	repo := Repository{API: srv.URL, Raw: srv.URL}
	_, err := repo.Update(context.Background(), srv.Client(), "main")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "manifest.json")

	m := &Manifest{Entries: []Entry{
		{Name: "NotoSans", Regular: "https://example.com/r.ttf", Bold: "https://example.com/b.ttf"},
		{Name: "NotoSansThai", Regular: "https://example.com/tr.ttf", Bold: "https://example.com/tb.ttf"},
	}}
	require.NoError(t, m.Save(fname))

	m2, err := Load(fname)
	require.NoError(t, err)
	assert.Equal(t, m, m2)

	require.NoError(t, os.WriteFile(fname, []byte(`[{"name": "A"}, {"name": "A"}]`), 0o644))
	_, err = Load(fname)
	assert.Error(t, err)
}

func TestSourcePath(t *testing.T) {
	assert.Equal(t, filepath.Join("src", "NotoSans-Regular.ttf"), SourcePath("src", "NotoSans", Regular))
	assert.Equal(t, filepath.Join("src", "NotoSans-Bold.ttf"), SourcePath("src", "NotoSans", Bold))
	assert.Equal(t, "700", Bold.String())
}

func TestDownload(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if strings.Contains(r.URL.Path, "broken") {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		fmt.Fprint(w, "font data for "+r.URL.Path)
	}))
	defer srv.Close()

	dir := t.TempDir()
	m := &Manifest{Entries: []Entry{
		{Name: "A", Regular: srv.URL + "/A-Regular.ttf", Bold: srv.URL + "/A-Bold.ttf"},
		{Name: "B", Regular: srv.URL + "/B-Regular.ttf", Bold: srv.URL + "/B-Bold.ttf"},
	}}
	ctx := context.Background()
	require.NoError(t, m.Download(ctx, srv.Client(), dir, false))
	assert.EqualValues(t, 4, requests.Load())

	data, err := os.ReadFile(SourcePath(dir, "B", Bold))
	require.NoError(t, err)
	assert.Equal(t, "font data for /B-Bold.ttf", string(data))

	// existing files are not downloaded again
	require.NoError(t, m.Download(ctx, srv.Client(), dir, false))
	assert.EqualValues(t, 4, requests.Load())
	require.NoError(t, m.Download(ctx, srv.Client(), dir, true))
	assert.EqualValues(t, 8, requests.Load())

	m.Entries = append(m.Entries, Entry{Name: "C", Regular: srv.URL + "/broken", Bold: srv.URL + "/broken"})
	assert.Error(t, m.Download(ctx, srv.Client(), dir, false))
	_, err = os.Stat(SourcePath(dir, "C", Regular))
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".download-"), "temporary file %s left behind", e.Name())
	}
}
