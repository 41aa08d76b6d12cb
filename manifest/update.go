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
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Repository describes a git repository of source fonts on GitHub.
type Repository struct {
	// API is the base URL of the repository in the GitHub REST API.
	API string

	// Raw is the base URL for downloading files from the repository.
	Raw string
}

// NotoFonts is the repository of the Noto fonts.
var NotoFonts = Repository{
	API: "https://api.github.com/repos/googlefonts/noto-fonts",
	Raw: "https://raw.githubusercontent.com/googlefonts/noto-fonts",
}

var fontPath = regexp.MustCompile(`^hinted/ttf/(NotoSans[A-Za-z]*)/(NotoSans[A-Za-z]*)-(Regular|Bold)\.ttf$`)

type gitTree struct {
	SHA  string `json:"sha"`
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}

// Update builds a new manifest from the fonts in the repository at the
// given git reference (a branch, a tag or a commit).  Only families with
// both a regular and a bold variant are included.  Entries are sorted
// by family name.
func (repo Repository) Update(ctx context.Context, client *http.Client, ref string) (*Manifest, error) {
	if client == nil {
		client = http.DefaultClient
	}

	treeURL := repo.API + "/git/trees/" + url.PathEscape(ref) + "?recursive=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, treeURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		tracer().Errorf("git tree request not OK: %v", resp.Status)
		return nil, fmt.Errorf("%s: %s", treeURL, resp.Status)
	}

	var tree gitTree
	err = json.NewDecoder(resp.Body).Decode(&tree)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", treeURL, err)
	}
	if tree.Truncated {
		tracer().Errorf("git tree for %q is truncated, some fonts may be missing", ref)
	}

	families := make(map[string]*Entry)
	for _, item := range tree.Tree {
		if item.Type != "blob" {
			continue
		}
		m := fontPath.FindStringSubmatch(item.Path)
		if m == nil || m[1] != m[2] || strings.HasSuffix(m[1], "UI") {
			continue
		}
		e := families[m[1]]
		if e == nil {
			e = &Entry{Name: m[1]}
			families[m[1]] = e
		}
		u := repo.Raw + "/" + url.PathEscape(ref) + "/" + item.Path
		if m[3] == "Bold" {
			e.Bold = u
		} else {
			e.Regular = u
		}
	}

	names := maps.Keys(families)
	slices.Sort(names)
	res := &Manifest{}
	for _, name := range names {
		e := families[name]
		if e.Regular == "" || e.Bold == "" {
			tracer().Debugf("skipping %s: incomplete", name)
			continue
		}
		res.Entries = append(res.Entries, *e)
	}
	if len(res.Entries) == 0 {
		return nil, fmt.Errorf("%s at %q: %w", repo.API, ref, ErrNotFound)
	}
	tracer().Infof("found %d font families at %q", len(res.Entries), ref)
	return res, nil
}
