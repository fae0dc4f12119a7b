package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debamax/apt-webindex/internal/models"
)

const fooAmd64 = `Package: foo
Version: 1.0
Architecture: amd64
Maintainer: Test <test@example.com>
Description: a test package
 with a continuation line
Filename: pool/f/foo/foo_1.0_amd64.deb

Package: foo
Version: 0.9
Architecture: amd64
Filename: pool/f/foo/foo_0.9_amd64.deb
`

const fooArm64 = `Package: foo
Version: 1.0
Architecture: arm64
Filename: pool/f/foo/foo_1.0_arm64.deb
`

func writeIndex(t *testing.T, root, dist, arch, content string) {
	t.Helper()
	dir := filepath.Join(root, "dists", dist, "main", "binary-"+arch)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Packages"), []byte(content), 0644))
}

func TestDists(t *testing.T) {
	root := t.TempDir()
	writeIndex(t, root, "unstable", "amd64", fooAmd64)
	writeIndex(t, root, "buster", "amd64", fooAmd64)

	dists, err := New(root, "main").Dists()
	require.NoError(t, err)
	assert.Equal(t, []string{"buster", "unstable"}, dists)
}

func TestDistsMissingRootIsFatal(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nowhere"), "main").Dists()
	require.Error(t, err)

	var ie *models.IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, models.ErrSourceUnavailable, ie.Type)
}

func TestArches(t *testing.T) {
	root := t.TempDir()
	writeIndex(t, root, "buster", "arm64", fooArm64)
	writeIndex(t, root, "buster", "amd64", fooAmd64)

	arches, err := New(root, "main").Arches("buster")
	require.NoError(t, err)
	assert.Equal(t, []string{"amd64", "arm64"}, arches)
}

func TestArchesNoBinaryDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dists", "buster", "main"), 0755))

	_, err := New(root, "main").Arches("buster")
	var ie *models.IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, models.ErrSourceUnavailable, ie.Type)
	assert.Equal(t, "buster", ie.Dist)
}

func TestRecords(t *testing.T) {
	root := t.TempDir()
	writeIndex(t, root, "buster", "amd64", fooAmd64)
	writeIndex(t, root, "buster", "arm64", fooArm64)

	records, err := New(root, "main").Records("buster")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, models.PackageRecord{
		SourceArch:   "amd64",
		Name:         "foo",
		Version:      "1.0",
		Architecture: "amd64",
		Filename:     "pool/f/foo/foo_1.0_amd64.deb",
	}, records[0])
	assert.Equal(t, "0.9", records[1].Version)
	assert.Equal(t, "arm64", records[2].SourceArch)
}

func TestRecordsGzipFallback(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "dists", "buster", "main", "binary-amd64")
	require.NoError(t, os.MkdirAll(dir, 0755))

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(fooAmd64))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Packages.gz"), buf.Bytes(), 0644))

	records, err := New(root, "main").Records("buster")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecordsMissingFieldAbortsLoad(t *testing.T) {
	root := t.TempDir()
	writeIndex(t, root, "buster", "amd64", `Package: foo
Version: 1.0
Architecture: amd64
Filename: pool/f/foo/foo_1.0_amd64.deb

Package: broken
Architecture: amd64
Filename: pool/b/broken/broken_1.0_amd64.deb
`)

	_, err := New(root, "main").Records("buster")
	require.Error(t, err)

	var ie *models.IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, models.ErrMalformedRecord, ie.Type)
	assert.Equal(t, "buster", ie.Dist)
	assert.Contains(t, ie.Error(), "Version")
}

func TestRecordsMissingIndexIsFatal(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "dists", "buster", "main", "binary-amd64")
	require.NoError(t, os.MkdirAll(dir, 0755))

	_, err := New(root, "main").Records("buster")
	var ie *models.IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, models.ErrSourceUnavailable, ie.Type)
}

func TestModTime(t *testing.T) {
	root := t.TempDir()
	pool := filepath.Join(root, "pool", "f", "foo")
	require.NoError(t, os.MkdirAll(pool, 0755))
	deb := filepath.Join(pool, "foo_1.0_amd64.deb")
	require.NoError(t, os.WriteFile(deb, []byte("fake deb"), 0644))
	stamp := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(deb, stamp, stamp))

	src := New(root, "main")
	mod, err := src.ModTime("pool/f/foo/foo_1.0_amd64.deb")
	require.NoError(t, err)
	assert.True(t, mod.Equal(stamp))

	_, err = src.ModTime("pool/f/foo/foo_9.9_amd64.deb")
	var ie *models.IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, models.ErrTimestampUnavailable, ie.Type)
}

func TestRelease(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "dists", "buster")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Release"), []byte(`Origin: Debamax
Label: Debamax
Suite: stable
Codename: buster
Date: Sat, 29 Aug 2026 10:00:00 UTC
Architectures: amd64 arm64
Components: main
`), 0644))

	info, err := New(root, "main").Release("buster")
	require.NoError(t, err)
	assert.Equal(t, "Debamax", info.Origin)
	assert.Equal(t, "buster", info.Codename)
	assert.Equal(t, []string{"amd64", "arm64"}, info.Architectures)

	_, err = New(root, "main").Release("bullseye")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
