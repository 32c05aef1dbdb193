package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addInput struct {
	A int `json:"a"`
	B int `json:"b"`
}

type addOutput struct {
	Sum int `json:"sum"`
}

type formOutput struct {
	Ok bool `json:"ok"`
}

func (formOutput) FormName() string { return "review_form" }

func TestInvokeSuccess(t *testing.T) {
	inv := NewInvoker(Info{Name: "add", Description: "adds"},
		func(ctx context.Context, in addInput) (addOutput, error) {
			return addOutput{Sum: in.A + in.B}, nil
		})

	res := inv.Invoke(context.Background(), `{"a":2,"b":3}`)
	require.True(t, res.Success)

	var out addOutput
	require.NoError(t, json.Unmarshal(res.Data, &out))
	assert.Equal(t, 5, out.Sum)
}

func TestInvokeBadArguments(t *testing.T) {
	inv := NewInvoker(Info{Name: "add", Description: "adds"},
		func(ctx context.Context, in addInput) (addOutput, error) {
			return addOutput{}, nil
		})

	res := inv.Invoke(context.Background(), `{"a": "not a number"}`)
	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "unmarshal")
}

func TestInvokeEmptyArgumentsTreatedAsEmptyObject(t *testing.T) {
	inv := NewInvoker(Info{Name: "add", Description: "adds"},
		func(ctx context.Context, in addInput) (addOutput, error) {
			return addOutput{Sum: in.A + in.B}, nil
		})

	res := inv.Invoke(context.Background(), "")
	assert.True(t, res.Success)
}

func TestInvokeToolError(t *testing.T) {
	inv := NewInvoker(Info{Name: "add", Description: "adds"},
		func(ctx context.Context, in addInput) (addOutput, error) {
			return addOutput{}, errors.New("downstream unavailable")
		})

	res := inv.Invoke(context.Background(), `{}`)
	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "downstream unavailable")
}

func TestInvokePanicContained(t *testing.T) {
	inv := NewInvoker(Info{Name: "add", Description: "adds"},
		func(ctx context.Context, in addInput) (addOutput, error) {
			panic("boom")
		})

	res := inv.Invoke(context.Background(), `{}`)
	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "panicked")
}

func TestInvokeFormShowerPropagates(t *testing.T) {
	inv := NewInvoker(Info{Name: "form", Description: "form tool"},
		func(ctx context.Context, in addInput) (formOutput, error) {
			return formOutput{Ok: true}, nil
		})

	res := inv.Invoke(context.Background(), `{}`)
	require.True(t, res.Success)
	assert.Equal(t, "review_form", res.ShowForm)
}

func TestInvokerSchemaReflected(t *testing.T) {
	inv := NewInvoker(Info{Name: "add", Description: "adds"},
		func(ctx context.Context, in addInput) (addOutput, error) {
			return addOutput{}, nil
		})

	info := inv.Info()
	require.NotNil(t, info.Schema)
	assert.ElementsMatch(t, []string{"a", "b"}, info.Schema.Required)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(NewInvoker(Info{Name: "beta", Description: "b"},
		func(ctx context.Context, in addInput) (addOutput, error) { return addOutput{}, nil }))
	r.Register(NewInvoker(Info{Name: "alpha", Description: "a"},
		func(ctx context.Context, in addInput) (addOutput, error) { return addOutput{}, nil }))

	assert.Equal(t, []string{"alpha", "beta"}, r.List())

	_, ok := r.Get("alpha")
	assert.True(t, ok)
	_, ok = r.Get("gamma")
	assert.False(t, ok)

	params := r.Params()
	require.Len(t, params, 2)
	assert.Equal(t, "alpha", params[0].Name)
	assert.NotNil(t, params[0].Properties)
}

func TestResultJson(t *testing.T) {
	res := &Result{Success: true, Data: json.RawMessage(`{"x":1}`), ShowForm: "f"}
	assert.JSONEq(t, `{"success":true,"data":{"x":1},"showForm":"f"}`, res.Json())
}
