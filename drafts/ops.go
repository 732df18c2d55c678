package drafts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Operation names understood by Apply.
const (
	OpToggleState    = "toggleState"
	OpAddCustomState = "addCustomState"
	OpRemoveState    = "removeState"
	OpAddDay         = "addDay"
	OpRemoveDay      = "removeDay"
	OpAddStop        = "addStop"
	OpRemoveStop     = "removeStop"
	OpUpdateStop     = "updateStop"
	OpToggleFacility = "toggleFacility"
	OpReset          = "reset"
)

var ErrUnknownOp = errors.New("unknown operation")

// Op is a single structural edit. Day and Stop are zero-based positions; Value
// carries the state, facility or new field value depending on Name.
type Op struct {
	Name  string `json:"op"`
	Day   int    `json:"day"`
	Stop  int    `json:"stop"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// Apply runs op against d. On error d is returned unchanged.
func Apply(d Draft, op Op) (Draft, error) {
	switch op.Name {
	case OpToggleState:
		return d.ToggleState(op.Value), nil
	case OpAddCustomState:
		if op.Value != "" {
			d.CustomState = op.Value
		}
		return d.AddCustomState(), nil
	case OpRemoveState:
		return d.RemoveState(op.Value), nil
	case OpAddDay:
		return d.AddDay()
	case OpRemoveDay:
		return d.RemoveDay(op.Day)
	case OpAddStop:
		return d.AddStop(op.Day)
	case OpRemoveStop:
		return d.RemoveStop(op.Day, op.Stop)
	case OpUpdateStop:
		return d.UpdateStop(op.Day, op.Stop, op.Field, op.Value)
	case OpToggleFacility:
		return d.ToggleFacility(op.Day, op.Stop, op.Value)
	case OpReset:
		return d.Reset(), nil
	}
	return d, fmt.Errorf("%w: %q", ErrUnknownOp, op.Name)
}

// ParseButton decodes the compact form used by submit buttons on the HTML
// form: "addDay", "removeDay/1", "removeStop/0/2", "toggleFacility/0/1/Dharmshala",
// "removeState/Tamil Nadu".
func ParseButton(v string) (Op, error) {
	name, rest, _ := strings.Cut(v, "/")
	op := Op{Name: name}
	var err error
	switch name {
	case OpAddDay, OpAddCustomState, OpReset:
	case OpToggleState, OpRemoveState:
		op.Value = rest
	case OpRemoveDay, OpAddStop:
		op.Day, err = strconv.Atoi(rest)
	case OpRemoveStop:
		op.Day, op.Stop, _, err = positions(rest)
	case OpToggleFacility:
		op.Day, op.Stop, op.Value, err = positions(rest)
	default:
		return Op{}, fmt.Errorf("%w: %q", ErrUnknownOp, name)
	}
	if err != nil {
		return Op{}, fmt.Errorf("bad %s arguments %q: %w", name, rest, err)
	}
	return op, nil
}

func positions(s string) (day, stop int, tail string, err error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) < 2 {
		return 0, 0, "", errors.New("want day/stop")
	}
	if day, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, "", err
	}
	if stop, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, "", err
	}
	if len(parts) == 3 {
		tail = parts[2]
	}
	return day, stop, tail, nil
}
