package report

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/rxguard/analyzer/hazard"
	"gopkg.in/yaml.v3"
)

// Baseline lists fingerprints of accepted hazards
type Baseline struct {
	Fingerprints []string `yaml:"fingerprints"`
	index        map[string]bool
}

// NewBaseline creates a baseline accepting hazards
func NewBaseline(hazards []*hazard.Hazard) *Baseline {
	ret := &Baseline{}
	seen := map[string]bool{}
	for _, h := range hazards {
		if h.Fingerprint == "" || seen[h.Fingerprint] {
			continue
		}
		seen[h.Fingerprint] = true
		ret.Fingerprints = append(ret.Fingerprints, h.Fingerprint)
	}
	sort.Strings(ret.Fingerprints)
	return ret
}

// LoadBaseline loads a YAML baseline from URL
func LoadBaseline(ctx context.Context, fs afs.Service, URL string) (*Baseline, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline %s: %w", URL, err)
	}
	ret := &Baseline{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode baseline %s: %w", URL, err)
	}
	return ret, nil
}

// Save writes the baseline to URL
func (b *Baseline) Save(ctx context.Context, fs afs.Service, URL string) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return err
	}
	return fs.Upload(ctx, URL, os.FileMode(0644), bytesReader(data))
}

// Contains returns true if the hazard is accepted by the baseline
func (b *Baseline) Contains(h *hazard.Hazard) bool {
	if b == nil {
		return false
	}
	if b.index == nil {
		b.index = make(map[string]bool, len(b.Fingerprints))
		for _, fingerprint := range b.Fingerprints {
			b.index[fingerprint] = true
		}
	}
	return b.index[h.Fingerprint]
}

// Filter returns hazards not accepted by the baseline
func (b *Baseline) Filter(hazards []*hazard.Hazard) []*hazard.Hazard {
	if b == nil {
		return hazards
	}
	var result []*hazard.Hazard
	for _, h := range hazards {
		if !b.Contains(h) {
			result = append(result, h)
		}
	}
	return result
}
