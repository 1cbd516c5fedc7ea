// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TransposeMode selects how an interval is derived during transposition.
type TransposeMode string

const (
	TransposeByKey        TransposeMode = "by_key"
	TransposeByInterval   TransposeMode = "by_interval"
	TransposeDiatonically TransposeMode = "diatonically"
)

// TransposeDirection selects which way the transposition moves.
type TransposeDirection string

const (
	TransposeUp      TransposeDirection = "up"
	TransposeDown    TransposeDirection = "down"
	TransposeClosest TransposeDirection = "closest"
)

// TransposeOptions carries transposition parameters through the pipeline.
// The conversion core threads these values to the document collaborator
// without interpreting them; validation happens at parse time.
type TransposeOptions struct {
	Mode      TransposeMode      `json:"mode"`
	Direction TransposeDirection `json:"direction"`

	// TargetKey applies in by_key mode; Interval in the other two modes.
	TargetKey string `json:"targetKey,omitempty"`
	Interval  int    `json:"transposeInterval,omitempty"`

	TransposeKeySignatures bool `json:"transposeKeySignatures,omitempty"`
	UseDoubleSharpsFlats   bool `json:"useDoubleSharpsFlats,omitempty"`
}
