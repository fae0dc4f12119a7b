package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/sirupsen/logrus"

	"github.com/debamax/apt-webindex/internal/config"
	"github.com/debamax/apt-webindex/internal/index"
	"github.com/debamax/apt-webindex/internal/models"
	"github.com/debamax/apt-webindex/internal/release"
	"github.com/debamax/apt-webindex/internal/render"
	"github.com/debamax/apt-webindex/internal/source"
	"github.com/debamax/apt-webindex/internal/version"
)

// run builds and renders the full overview. Distributions are
// processed independently: one failing distribution is dropped from
// the page and reported, the others still render, and the run exits
// non-zero.
func run(conf *config.Config, out io.Writer, cgi bool) error {
	src := source.New(conf.Root, conf.Component)

	dists, err := src.Dists()
	if err != nil {
		return err
	}
	logrus.Debugf("Found %d distributions", len(dists))

	var keyring openpgp.EntityList
	if conf.Keyring != "" {
		keyring, err = release.LoadKeyring(conf.Keyring)
		if err != nil {
			return &models.IndexError{Type: models.ErrInvalidConfig, Err: err}
		}
		logrus.Debugf("Loaded keyring from %s", conf.Keyring)
	}

	cmp := version.New()
	// One timestamp for the whole run, so every age is measured
	// against the same instant.
	now := time.Now()

	overview := index.Overview{Title: conf.Title}
	var failures []error
	for _, dist := range dists {
		d, err := buildDist(src, cmp, now, conf.FastArch, keyring, dist)
		if err != nil {
			logrus.Errorf("Skipping distribution %s: %v", dist, err)
			failures = append(failures, err)
			continue
		}
		logrus.Infof("Distribution %s: %d packages", dist, len(d.Rows))
		overview.Dists = append(overview.Dists, *d)
	}

	if cgi {
		fmt.Fprint(out, "Content-Type: text/html; charset=utf-8\n\n")
	}
	if err := render.Render(out, overview); err != nil {
		return &models.IndexError{Type: models.ErrRender, Err: err}
	}

	return errors.Join(failures...)
}

// buildDist computes the presentation model of one distribution.
func buildDist(src *source.Source, cmp *version.Comparator, now time.Time,
	fastArch string, keyring openpgp.EntityList, dist string) (*index.Dist, error) {

	records, err := src.Records(dist)
	if err != nil {
		return nil, err
	}

	d := &index.Dist{Name: dist}

	if info, err := src.Release(dist); err == nil {
		d.Release = info
	} else if !os.IsNotExist(err) {
		logrus.Warnf("%s: unreadable Release file: %v", dist, err)
	}

	if keyring != nil {
		if data, err := src.InRelease(dist); err == nil {
			signed := false
			if info, err := release.VerifyInRelease(data, keyring); err == nil {
				signed = true
				if d.Release == nil {
					d.Release = info
				}
			} else {
				logrus.Warnf("%s: %v", dist, err)
			}
			d.Signed = &signed
		}
	}

	classifier := &index.Classifier{Now: now, FastArch: fastArch}
	for _, group := range index.Aggregate(records) {
		sel := index.Select(cmp, group)

		// Freshness comes from the first artifact of the newest
		// version, like the pool directory. Surprising when one of
		// the builds is delayed, hence the extra hint below.
		modTime, err := src.ModTime(sel.Artifacts[0].Filename)
		if err != nil {
			if ie, ok := err.(*models.IndexError); ok {
				ie.Dist = dist
			}
			return nil, err
		}

		d.Rows = append(d.Rows, index.BuildRow(group, sel,
			classifier.Classify(modTime),
			classifier.Delayed(sel.Artifacts)))
	}

	return d, nil
}
