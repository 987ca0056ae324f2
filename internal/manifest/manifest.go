// Package manifest records what a run wrote so identical runs can be
// compared and outputs verified later.
package manifest

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/zeebo/blake3"
)

const FileName = "manifest.json"

type Entry struct {
	// Path is relative to the language pair directory, slash separated.
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	BLAKE3 string `json:"blake3"`
}

// Manifest holds no timestamps or run ids so identical runs produce identical bytes.
type Manifest struct {
	LangPair string            `json:"lang_pair"`
	Stats    domain.BuildStats `json:"stats"`
	Files    []Entry           `json:"files"`
}

// Mismatch describes a listed file whose content no longer matches.
type Mismatch struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Build hashes files, which must live under dir.
func Build(dir, pair string, stats domain.BuildStats, files []string) (*Manifest, error) {
	m := &Manifest{LangPair: pair, Stats: stats, Files: make([]Entry, 0, len(files))}
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			return nil, fmt.Errorf("relative path for %s: %w", f, err)
		}
		digest, size, err := hashFile(f)
		if err != nil {
			return nil, err
		}
		m.Files = append(m.Files, Entry{Path: filepath.ToSlash(rel), Size: size, BLAKE3: digest})
	}
	sort.Slice(m.Files, func(i, j int) bool { return m.Files[i].Path < m.Files[j].Path })
	return m, nil
}

// Merge folds the entries of prev that next did not rewrite into next. Stats
// always come from next. prev for another pair is ignored.
func Merge(prev, next *Manifest) *Manifest {
	if prev == nil || prev.LangPair != next.LangPair {
		return next
	}
	seen := make(map[string]struct{}, len(next.Files))
	for _, e := range next.Files {
		seen[e.Path] = struct{}{}
	}

	merged := &Manifest{LangPair: next.LangPair, Stats: next.Stats, Files: append([]Entry(nil), next.Files...)}
	for _, e := range prev.Files {
		if _, ok := seen[e.Path]; !ok {
			merged.Files = append(merged.Files, e)
		}
	}
	sort.Slice(merged.Files, func(i, j int) bool { return merged.Files[i].Path < merged.Files[j].Path })
	return merged
}

func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

func Write(m *Manifest, dir string) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

func Read(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Verify rehashes every listed file under dir.
func Verify(m *Manifest, dir string) ([]Mismatch, error) {
	var mismatches []Mismatch
	for _, e := range m.Files {
		digest, size, err := hashFile(filepath.Join(dir, filepath.FromSlash(e.Path)))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				mismatches = append(mismatches, Mismatch{Path: e.Path, Reason: "missing"})
				continue
			}
			return nil, err
		}
		switch {
		case size != e.Size:
			mismatches = append(mismatches, Mismatch{Path: e.Path, Reason: fmt.Sprintf("size %d, expected %d", size, e.Size)})
		case digest != e.BLAKE3:
			mismatches = append(mismatches, Mismatch{Path: e.Path, Reason: "digest differs"})
		}
	}
	return mismatches, nil
}
