package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// Algorithm names a supported digest. The value is the suffix of the
// matching ABOUT field (checksum_<algorithm>).
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
)

// Algorithms lists the supported digests in field order.
var Algorithms = []Algorithm{MD5, SHA1, SHA256}

// FieldName returns the ABOUT field holding this digest.
func (a Algorithm) FieldName() string {
	return "checksum_" + string(a)
}

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	}
	return nil, fmt.Errorf("unsupported checksum algorithm: %q", string(a))
}

// Digests holds hex-encoded digests keyed by algorithm.
type Digests map[Algorithm]string

// Matches reports whether expected equals the computed digest for a,
// ignoring case and surrounding whitespace.
func (d Digests) Matches(a Algorithm, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(expected), d[a])
}

// Calculate computes every supported digest of content.
func Calculate(content []byte) Digests {
	out := make(Digests, len(Algorithms))
	m := md5.Sum(content)
	s1 := sha1.Sum(content)
	s256 := sha256.Sum256(content)
	out[MD5] = hex.EncodeToString(m[:])
	out[SHA1] = hex.EncodeToString(s1[:])
	out[SHA256] = hex.EncodeToString(s256[:])
	return out
}

// CalculateReader streams r through every supported digest.
func CalculateReader(r io.Reader) (Digests, error) {
	hashes := make(map[Algorithm]hash.Hash, len(Algorithms))
	writers := make([]io.Writer, 0, len(Algorithms))
	for _, a := range Algorithms {
		h, err := a.newHash()
		if err != nil {
			return nil, err
		}
		hashes[a] = h
		writers = append(writers, h)
	}

	if _, err := io.Copy(io.MultiWriter(writers...), r); err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	out := make(Digests, len(hashes))
	for a, h := range hashes {
		out[a] = hex.EncodeToString(h.Sum(nil))
	}
	return out, nil
}

// CalculateFile computes every supported digest of the file at path.
func CalculateFile(path string) (Digests, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return CalculateReader(f)
}
