package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"

	"github.com/debamax/apt-webindex/internal/models"
)

// readPackagesIndex opens the Packages index of one binary-<arch>
// directory, trying the uncompressed file first, then Packages.gz,
// then Packages.xz.
func readPackagesIndex(dir, arch string) ([]models.PackageRecord, error) {
	path := filepath.Join(dir, "Packages")
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		return parsePackages(f, arch, path)
	}

	gzPath := path + ".gz"
	if gf, gzErr := os.Open(gzPath); gzErr == nil {
		defer gf.Close()
		gz, gzErr := gzip.NewReader(gf)
		if gzErr != nil {
			return nil, &models.IndexError{
				Type: models.ErrSourceUnavailable,
				Err:  fmt.Errorf("failed to decompress %s: %w", gzPath, gzErr),
			}
		}
		defer gz.Close()
		return parsePackages(gz, arch, gzPath)
	}

	xzPath := path + ".xz"
	if xf, xzErr := os.Open(xzPath); xzErr == nil {
		defer xf.Close()
		xr, xzErr := xz.NewReader(xf)
		if xzErr != nil {
			return nil, &models.IndexError{
				Type: models.ErrSourceUnavailable,
				Err:  fmt.Errorf("failed to decompress %s: %w", xzPath, xzErr),
			}
		}
		return parsePackages(xr, arch, xzPath)
	}

	return nil, &models.IndexError{
		Type: models.ErrSourceUnavailable,
		Err:  fmt.Errorf("failed to open Packages index: %w", err),
	}
}

// parsePackages reads RFC-822-style stanzas from a Packages index.
// Each stanza must carry Package, Version, Architecture and Filename;
// a stanza missing one of them aborts the whole load, since a partial
// record cannot be aggregated safely.
func parsePackages(r io.Reader, arch, path string) ([]models.PackageRecord, error) {
	var records []models.PackageRecord
	var current map[string]string
	stanza := 0

	flush := func() error {
		if current == nil {
			return nil
		}
		stanza++
		for _, field := range []string{"Package", "Version", "Architecture", "Filename"} {
			if current[field] == "" {
				return &models.IndexError{
					Type: models.ErrMalformedRecord,
					Err: fmt.Errorf("%s: stanza %d is missing %s",
						path, stanza, field),
				}
			}
		}
		records = append(records, models.PackageRecord{
			SourceArch:   arch,
			Name:         current["Package"],
			Version:      current["Version"],
			Architecture: current["Architecture"],
			Filename:     current["Filename"],
		})
		current = nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		// Empty line = end of stanza
		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		// Continuation lines (long Description etc.) carry no fields
		// we need.
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if current == nil {
			current = make(map[string]string)
		}
		current[parts[0]] = strings.TrimSpace(parts[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, &models.IndexError{
			Type: models.ErrSourceUnavailable,
			Err:  fmt.Errorf("failed to read %s: %w", path, err),
		}
	}

	// Don't forget the last stanza
	if err := flush(); err != nil {
		return nil, err
	}

	return records, nil
}
