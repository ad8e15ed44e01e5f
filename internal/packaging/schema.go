// SPDX-License-Identifier: Apache-2.0

package packaging

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// packageSchema is the CUE contract for the content-package manifest.
// Page timings must be ordered and confidences in [0,1]; the player
// rejects anything less.
const packageSchema = `
#Page: {
	number:     int & >0
	title:      string & !=""
	text:       string & !=""
	audioFile?: string & !=""
	start:      number & >=0
	end:        number & >=start
	duration:   number & >=0
	confidence: number & >=0 & <=1
}

#Package: {
	id:       string & !=""
	title:    string
	language: string & !=""
	pages: [#Page, ...#Page]
}
`

// Validate checks manifest JSON against the package schema.
func Validate(data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(packageSchema).LookupPath(cue.ParsePath("#Package"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("package schema: %w", err)
	}
	if err := cuejson.Validate(data, schema); err != nil {
		return fmt.Errorf("package manifest: %w", err)
	}
	return nil
}
