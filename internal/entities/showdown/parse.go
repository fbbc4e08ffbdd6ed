package showdown

import (
	"encoding/json"
	"strings"

	"github.com/KirkDiggler/showdown-player/internal/errors"
)

// ParseRequest decodes and validates a request payload.
// Shape violations fail with an InvalidArgument error.
func ParseRequest(data []byte) (*Request, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.InvalidArgument("request payload is empty")
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "request payload is not valid JSON")
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return &req, nil
}

// Validate checks the fields each request kind depends on.
func (r *Request) Validate() error {
	if r.Wait {
		return nil
	}

	vb := errors.NewValidationBuilder()

	roster := r.Roster()
	if len(roster) == 0 {
		vb.Field("side.pokemon", "is required")
		return vb.Build()
	}

	for i, p := range roster {
		if p == nil {
			vb.Fieldf("side.pokemon", "entry %d is null", i+1)
			continue
		}
		if p.Ident == "" {
			vb.Fieldf("side.pokemon", "entry %d has no ident", i+1)
		}
		if p.Condition == "" {
			vb.Fieldf("side.pokemon", "entry %d has no condition", i+1)
		}
	}

	if n := len(r.ForceSwitch); n > len(roster) {
		vb.Fieldf("forceSwitch", "has %d slots but the roster has %d entries", n, len(roster))
	}

	if len(r.ForceSwitch) == 0 {
		if n := len(r.Active); n > len(roster) {
			vb.Fieldf("active", "has %d slots but the roster has %d entries", n, len(roster))
		}
		for i, a := range r.Active {
			if a == nil {
				vb.Fieldf("active", "slot %d is null", i+1)
				continue
			}
			if len(a.Moves) == 0 {
				vb.Fieldf("active", "slot %d has no moves", i+1)
			}
			for j, m := range a.Moves {
				if m == nil {
					vb.Fieldf("active", "slot %d move %d is null", i+1, j+1)
				}
			}
			if a.MaxMoves != nil {
				for j, m := range a.MaxMoves.MaxMoves {
					if m == nil {
						vb.Fieldf("active", "slot %d max move %d is null", i+1, j+1)
					}
				}
			}
		}
	}

	return vb.Build()
}
