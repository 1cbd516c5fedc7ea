// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notation

import (
	"encoding/json"

	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/scoreconv/pkg/types"
)

// ParseTransposeOptions validates the wire-format "transpose" object into
// TransposeOptions. The conversion core calls this once per job object at
// batch parse time; a failure here aborts parsing of the whole batch.
func ParseTransposeOptions(raw json.RawMessage) (*types.TransposeOptions, error) {
	var opts types.TransposeOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, errors.Errorf("malformed transpose options: %w", err)
	}

	switch opts.Mode {
	case types.TransposeByKey:
		if opts.TargetKey == "" {
			return nil, errors.New("transpose mode by_key requires targetKey")
		}
	case types.TransposeByInterval, types.TransposeDiatonically:
		if opts.Interval == 0 {
			return nil, errors.New("transpose requires a non-zero transposeInterval")
		}
	default:
		return nil, errors.Errorf("unknown transpose mode %q", opts.Mode)
	}

	switch opts.Direction {
	case types.TransposeUp, types.TransposeDown, types.TransposeClosest:
	default:
		return nil, errors.Errorf("unknown transpose direction %q", opts.Direction)
	}

	return &opts, nil
}
