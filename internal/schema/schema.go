// Package schema compiles and caches the embedded JSON schema documents used
// to validate inbound request payloads.
package schema

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/qri-io/jsonschema"
)

//go:embed documents/*.json
var documents embed.FS

// Validator holds compiled schemas keyed by document name (filename without
// extension).
type Validator struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewValidator compiles every embedded schema document.
func NewValidator() (*Validator, error) {
	v := &Validator{cache: make(map[string]*jsonschema.Schema)}

	entries, err := fs.ReadDir(documents, "documents")
	if err != nil {
		return nil, fmt.Errorf("read schema documents: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		b, err := fs.ReadFile(documents, path.Join("documents", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		v.cache[name] = rs
	}

	return v, nil
}

// Validate checks payload against the named schema. It returns an error
// describing the first violation, or nil when the payload conforms.
func (v *Validator) Validate(ctx context.Context, name string, payload []byte) error {
	v.mu.RLock()
	rs, ok := v.cache[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	keyErrs, err := rs.ValidateBytes(ctx, payload)
	if err != nil {
		return fmt.Errorf("validate against %s: %w", name, err)
	}
	if len(keyErrs) > 0 {
		return fmt.Errorf("%s", keyErrs[0].Message)
	}

	return nil
}
