// Package index turns flat package records into the per-distribution
// presentation model: one group per package name, newest version first,
// with the artifact listing and freshness classification for that
// version.
package index

import (
	"sort"
	"strings"

	"github.com/debamax/apt-webindex/internal/models"
	"github.com/debamax/apt-webindex/internal/version"
)

// Group holds every record sharing one package name, across all
// versions and architectures.
type Group struct {
	Name    string
	Records []models.PackageRecord
}

// Selection is the per-package result of picking the newest version.
type Selection struct {
	Newest string
	// Older versions in strictly descending order, newest excluded.
	Older []string
	// Unique (architecture, filename) pairs for the newest version,
	// ascending by architecture.
	Artifacts []models.Artifact
	// Pool directory shared by the newest artifacts, i.e. the first
	// artifact's filename with its last path segment stripped.
	PoolDir string
}

// Aggregate groups records by package name. The returned slice is
// ascending by name; presentation order is fixed here so callers can
// iterate as-is.
func Aggregate(records []models.PackageRecord) []Group {
	byName := make(map[string][]models.PackageRecord)
	for _, rec := range records {
		byName[rec.Name] = append(byName[rec.Name], rec)
	}

	groups := make([]Group, 0, len(byName))
	for name, recs := range byName {
		groups = append(groups, Group{Name: name, Records: recs})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})
	return groups
}

// Select picks the newest version of a group under Debian ordering and
// assembles its deduplicated artifact listing.
//
// The pool directory is taken from a single representative artifact;
// this assumes all artifacts of one package version live under the
// same pool directory, which the archive layout provides but nothing
// here enforces.
func Select(cmp *version.Comparator, group Group) Selection {
	seen := make(map[string]bool)
	var versions []string
	for _, rec := range group.Records {
		if !seen[rec.Version] {
			seen[rec.Version] = true
			versions = append(versions, rec.Version)
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		return cmp.Compare(versions[i], versions[j]) > 0
	})

	sel := Selection{
		Newest: versions[0],
		Older:  versions[1:],
	}

	dedup := make(map[models.Artifact]bool)
	for _, rec := range group.Records {
		if rec.Version != sel.Newest {
			continue
		}
		art := models.Artifact{
			Architecture: rec.Architecture,
			Filename:     rec.Filename,
		}
		if !dedup[art] {
			dedup[art] = true
			sel.Artifacts = append(sel.Artifacts, art)
		}
	}
	sort.Slice(sel.Artifacts, func(i, j int) bool {
		a, b := sel.Artifacts[i], sel.Artifacts[j]
		if a.Architecture != b.Architecture {
			return a.Architecture < b.Architecture
		}
		return a.Filename < b.Filename
	})

	sel.PoolDir = poolDir(sel.Artifacts[0].Filename)
	return sel
}

// poolDir strips the final path segment from a pool filename.
func poolDir(filename string) string {
	if i := strings.LastIndexByte(filename, '/'); i >= 0 {
		return filename[:i]
	}
	return filename
}
