// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch parses batch job files into normalized jobs and runs them
// sequentially, collecting per-job failures into one aggregate result.
package batch

import (
	"bytes"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/scoreconv/internal/convert"
	"github.com/pdiddy/scoreconv/internal/notation"
	"github.com/pdiddy/scoreconv/pkg/types"
)

// rawJob mirrors one object of the batch job wire format.
type rawJob struct {
	In        string          `json:"in"`
	Transpose json.RawMessage `json:"transpose"`
	Out       json.RawMessage `json:"out"`
}

// ParseJobFile reads and parses a batch job file.
func ParseJobFile(jobFile string) ([]types.Job, error) {
	data, err := os.ReadFile(jobFile)
	if err != nil {
		return nil, errors.Errorf("%w: %s", convert.ErrBatchJobFileOpen, jobFile)
	}
	return ParseJobs(data)
}

// ParseJobs parses the batch job document: a JSON array of objects, each
// with "in" (string), optional "transpose" (object), and "out" (string, or
// array of strings and [prefix, suffix] pairs). Array-valued "out" expands
// to one job per element, preserving element order immediately after the
// parent's position. A malformed transpose object aborts the whole parse.
func ParseJobs(data []byte) ([]types.Job, error) {
	var raw []rawJob
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Errorf("%w: %s", convert.ErrBatchJobFileParse, err.Error())
	}

	jobs := make([]types.Job, 0, len(raw))
	for i, r := range raw {
		if r.In == "" {
			return nil, errors.Errorf("%w: job %d has no input path", convert.ErrBatchJobFileParse, i)
		}

		job := types.Job{In: normalizePath(r.In)}

		if isSet(r.Transpose) {
			opts, err := notation.ParseTransposeOptions(r.Transpose)
			if err != nil {
				// Fail fast: a malformed transpose almost certainly means a
				// malformed batch file.
				return nil, err
			}
			job.Transpose = opts
		}

		outs, err := parseOut(r.Out)
		if err != nil {
			return nil, errors.Errorf("%w: job %d: %s", convert.ErrBatchJobFileParse, i, err.Error())
		}
		for _, out := range outs {
			j := job
			j.Out = out
			jobs = append(jobs, j)
		}
	}

	return jobs, nil
}

// isSet reports whether a raw JSON value is present and non-empty. An
// object with no keys counts as empty regardless of formatting, so a
// pretty-printed "{ }" is treated the same as an absent value.
func isSet(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	switch string(v) {
	case "", "null":
		return false
	}
	if v[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(v, &obj); err == nil && len(obj) == 0 {
			return false
		}
	}
	return true
}

// parseOut expands the "out" value into output specs, one per job.
func parseOut(raw json.RawMessage) ([]types.OutputSpec, error) {
	if !isSet(raw) {
		return nil, errors.New(`missing required "out" value`)
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []types.OutputSpec{parseOutputPath(single)}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.New(`"out" must be a string or an array`)
	}

	specs := make([]types.OutputSpec, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			specs = append(specs, parseOutputPath(s))
			continue
		}

		var pair []string
		if err := json.Unmarshal(item, &pair); err == nil && len(pair) == 2 {
			specs = append(specs, templatedFrom(pair[0], pair[1]))
			continue
		}

		return nil, errors.New(`"out" entries must be strings or [prefix, suffix] pairs`)
	}
	return specs, nil
}

// parseOutputPath classifies a literal output path. A placeholder in the
// base name marks a part-splitting template; the tagged variant is decided
// here, once, so downstream code never re-scans for the marker.
func parseOutputPath(p string) types.OutputSpec {
	p = normalizePath(p)

	ext := path.Ext(p)
	base := strings.TrimSuffix(path.Base(p), ext)
	if !strings.Contains(base, types.PartPlaceholder) {
		return types.SingleOutput(p)
	}

	return types.TemplatedOutput(dirOf(p), base, strings.TrimPrefix(ext, "."))
}

// templatedFrom builds the template for a [prefix, suffix] pair: the part
// name is substituted between them, with a dot before the suffix.
func templatedFrom(prefix, suffix string) types.OutputSpec {
	prefix = normalizePath(prefix)
	dir, basePrefix := path.Split(prefix)
	return types.TemplatedOutput(strings.TrimSuffix(dir, "/"), basePrefix+types.PartPlaceholder, suffix)
}

func dirOf(p string) string {
	dir := path.Dir(p)
	if dir == "." {
		return ""
	}
	return dir
}

// normalizePath converts platform separators in user-supplied paths to
// forward slashes.
func normalizePath(p string) string {
	return filepath.ToSlash(p)
}
