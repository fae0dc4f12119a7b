package index

import (
	"github.com/debamax/apt-webindex/internal/models"
	"github.com/debamax/apt-webindex/internal/release"
)

// Row is one package line in a distribution table. It carries data and
// styling flags only; markup is the renderer's business.
type Row struct {
	Package   string
	PoolDir   string
	Newest    string
	Freshness Freshness
	// Delayed hints that the newest version is likely waiting for a
	// secondary architecture build.
	Delayed bool
	// Artifacts of the newest version, ascending by architecture.
	Artifacts []models.Artifact
	// Older versions, descending.
	Older []string
}

// Dist is the presentation model of one distribution: rows in
// ascending package-name order plus optional Release metadata.
type Dist struct {
	Name    string
	Release *release.Info
	// Signed is nil when no signature check ran, otherwise the
	// InRelease verification outcome.
	Signed *bool
	Rows   []Row
}

// Overview is the full presentation model for one run.
type Overview struct {
	Title string
	// Dists in ascending name order.
	Dists []Dist
}

// Tooltip is the hover text of the newest-version cell: the age
// description plus the artifact's mtime in UTC.
func (r Row) Tooltip() string {
	return r.Freshness.Age + "\n" +
		r.Freshness.ModTime.UTC().Format("2006-01-02 15:04:05Z")
}

// BuildRow assembles one table row from a selection and its freshness.
func BuildRow(group Group, sel Selection, fresh Freshness, delayed bool) Row {
	return Row{
		Package:   group.Name,
		PoolDir:   sel.PoolDir,
		Newest:    sel.Newest,
		Freshness: fresh,
		Delayed:   delayed,
		Artifacts: sel.Artifacts,
		Older:     sel.Older,
	}
}
