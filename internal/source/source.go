// Package source is the filesystem collaborator: it discovers
// distributions and architectures under a repository root and reads
// the per-architecture Packages indices into records.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/debamax/apt-webindex/internal/models"
	"github.com/debamax/apt-webindex/internal/release"
)

// Source reads one repository tree.
type Source struct {
	Root      string
	Component string
}

// New creates a source for the repository rooted at root.
func New(root, component string) *Source {
	return &Source{Root: root, Component: component}
}

// Dists returns the distribution directories under <root>/dists in
// ascending name order.
func (s *Source) Dists() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.Root, "dists"))
	if err != nil {
		return nil, &models.IndexError{
			Type: models.ErrSourceUnavailable,
			Err:  fmt.Errorf("failed to list dists: %w", err),
		}
	}

	var dists []string
	for _, entry := range entries {
		if entry.IsDir() {
			dists = append(dists, entry.Name())
		}
	}
	sort.Strings(dists)
	return dists, nil
}

// Arches returns the architectures of a distribution, taken from the
// binary-<arch> directories of its component.
func (s *Source) Arches(dist string) ([]string, error) {
	dir := filepath.Join(s.Root, "dists", dist, s.Component)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &models.IndexError{
			Type: models.ErrSourceUnavailable,
			Dist: dist,
			Err:  fmt.Errorf("failed to list %s: %w", dir, err),
		}
	}

	var arches []string
	for _, entry := range entries {
		if name, ok := strings.CutPrefix(entry.Name(), "binary-"); ok {
			arches = append(arches, name)
		}
	}
	if len(arches) == 0 {
		return nil, &models.IndexError{
			Type: models.ErrSourceUnavailable,
			Dist: dist,
			Err:  fmt.Errorf("no binary-* directories in %s", dir),
		}
	}
	sort.Strings(arches)
	return arches, nil
}

// Records loads every package record of a distribution, one Packages
// index per architecture. A missing index or a malformed stanza is
// fatal for the distribution: a partial table would look complete and
// mislead.
func (s *Source) Records(dist string) ([]models.PackageRecord, error) {
	arches, err := s.Arches(dist)
	if err != nil {
		return nil, err
	}

	var records []models.PackageRecord
	for _, arch := range arches {
		dir := filepath.Join(s.Root, "dists", dist, s.Component,
			"binary-"+arch)
		recs, err := readPackagesIndex(dir, arch)
		if err != nil {
			if ie, ok := err.(*models.IndexError); ok {
				ie.Dist = dist
				return nil, ie
			}
			return nil, err
		}
		logrus.Debugf("%s/%s: %d records", dist, arch, len(recs))
		records = append(records, recs...)
	}
	return records, nil
}

// ModTime returns the last-modified time of a pool artifact.
func (s *Source) ModTime(relpath string) (time.Time, error) {
	info, err := os.Stat(filepath.Join(s.Root, relpath))
	if err != nil {
		return time.Time{}, &models.IndexError{
			Type: models.ErrTimestampUnavailable,
			Err:  fmt.Errorf("failed to stat %s: %w", relpath, err),
		}
	}
	return info.ModTime(), nil
}

// Release reads dists/<dist>/Release. A missing file is reported as
// os.ErrNotExist so the caller can treat it as optional.
func (s *Source) Release(dist string) (*release.Info, error) {
	f, err := os.Open(filepath.Join(s.Root, "dists", dist, "Release"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return release.Parse(f)
}

// InRelease returns the raw clearsigned InRelease document.
func (s *Source) InRelease(dist string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Root, "dists", dist, "InRelease"))
}
