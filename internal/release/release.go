// Package release reads dists/<dist>/Release metadata and optionally
// verifies the clearsign signature of InRelease against a keyring.
package release

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
)

// Info holds the Release paragraph fields the index displays.
type Info struct {
	Origin        string
	Label         string
	Suite         string
	Codename      string
	Date          string
	Architectures []string
	Components    []string
}

// Parse reads a Release (or the payload of an InRelease) paragraph.
// The checksum sections are skipped; only the header fields matter
// here.
func Parse(r io.Reader) (*Info, error) {
	info := &Info{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		// Continuation lines belong to the checksum lists.
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}
		if line == "" {
			break
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		field := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch field {
		case "Origin":
			info.Origin = value
		case "Label":
			info.Label = value
		case "Suite":
			info.Suite = value
		case "Codename":
			info.Codename = value
		case "Date":
			info.Date = value
		case "Architectures":
			info.Architectures = strings.Fields(value)
		case "Components":
			info.Components = strings.Fields(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read Release: %w", err)
	}

	return info, nil
}

// LoadKeyring reads a public keyring, trying armored format first and
// falling back to binary.
func LoadKeyring(path string) (openpgp.EntityList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	defer f.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		f.Seek(0, 0)
		keyring, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("no keys found in keyring")
	}

	return keyring, nil
}

// VerifyInRelease checks the clearsign signature of an InRelease
// document against the keyring and returns the signed payload's
// parsed Release fields.
func VerifyInRelease(data []byte, keyring openpgp.EntityList) (*Info, error) {
	block, _ := clearsign.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no clearsign block found in InRelease")
	}

	_, err := openpgp.CheckDetachedSignature(keyring,
		bytes.NewReader(block.Bytes),
		block.ArmoredSignature.Body, nil)
	if err != nil {
		return nil, fmt.Errorf("signature verification failed: %w", err)
	}

	return Parse(bytes.NewReader(block.Plaintext))
}
