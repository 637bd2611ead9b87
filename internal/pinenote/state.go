package pinenote

import (
	"context"

	"github.com/jmylchreest/pinenotectl/internal/model"
)

func decodeOnOff(property string, v byte) (model.OnOffState, error) {
	switch v {
	case 1:
		return model.On, nil
	case 0:
		return model.Off, nil
	default:
		return model.Off, &model.DecodeError{Property: property, Value: int64(v)}
	}
}

// resolve turns a request into the state to write. Toggle costs one read
// through current; explicit requests cost none.
func resolve(ctx context.Context, req model.ToggleRequest, current func(context.Context) (model.OnOffState, error)) (model.OnOffState, error) {
	if req != model.RequestToggle {
		return req.State()
	}
	state, err := current(ctx)
	if err != nil {
		return model.Off, err
	}
	return state.Not(), nil
}
