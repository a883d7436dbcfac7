package region

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marcus/tvnav/internal/models"
)

// ParseError reports a malformed region description
type ParseError struct {
	Input string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("region %q: %s", e.Input, e.Msg)
}

// Parse reads a comma separated region list of the form
//
//	id:kind:count[:columns][:off]
//
// e.g. "tabs:strip:5,hero:single:1,grid-0:grid:23:5". Regions are ordered as
// written. A trailing "off" registers the region disabled.
func Parse(s string) ([]models.Region, error) {
	var out []models.Region
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := parseOne(part)
		if err != nil {
			return nil, err
		}
		r.Order = i
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, &ParseError{Input: s, Msg: "no regions"}
	}
	return out, nil
}

func parseOne(part string) (models.Region, error) {
	fields := strings.Split(part, ":")
	if len(fields) < 3 {
		return models.Region{}, &ParseError{Input: part, Msg: "want id:kind:count"}
	}

	r := models.Region{ID: fields[0], Kind: models.RegionKind(fields[1]), Enabled: true}
	if r.ID == "" {
		return models.Region{}, &ParseError{Input: part, Msg: "empty id"}
	}
	if !models.IsValidKind(r.Kind) {
		return models.Region{}, &ParseError{Input: part, Msg: fmt.Sprintf("unknown kind %q", fields[1])}
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil || n < 0 {
		return models.Region{}, &ParseError{Input: part, Msg: "count must be a non-negative integer"}
	}
	r.ItemCount = n

	for _, f := range fields[3:] {
		if f == "off" {
			r.Enabled = false
			continue
		}
		cols, err := strconv.Atoi(f)
		if err != nil || cols < 1 {
			return models.Region{}, &ParseError{Input: part, Msg: fmt.Sprintf("bad columns %q", f)}
		}
		r.Columns = cols
	}
	return r, nil
}
