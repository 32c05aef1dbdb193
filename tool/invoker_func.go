package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rayiskander2406/vendorportal/pkg/safe"
	"github.com/rayiskander2406/vendorportal/pkg/schema"
)

type InvokerFunc[T, O any] func(ctx context.Context, input T) (O, error)

type invoker[T, O any] struct {
	info Info
	fn   InvokerFunc[T, O]
}

func (t *invoker[T, O]) Info() Info {
	return t.info
}

func (t *invoker[T, O]) Invoke(ctx context.Context, arguments string) *Result {
	var input T
	if arguments == "" {
		arguments = "{}"
	}
	if err := json.Unmarshal([]byte(arguments), &input); err != nil {
		return Failure(fmt.Errorf("tool arguments unmarshal json failed, tool_name=%s, error=%w", t.info.Name, err))
	}

	var (
		output O
		errOut error
	)
	// a panicking tool must read as a failed call, not a dead turn
	if p := safe.Call(func() {
		output, errOut = t.fn(ctx, input)
	}); p != nil {
		return Failure(fmt.Errorf("tool %s panicked: %v", t.info.Name, p))
	}

	if errOut != nil {
		return Failure(fmt.Errorf("tool %s invoke err: %w", t.info.Name, errOut))
	}

	data, err := json.Marshal(output)
	if err != nil {
		return Failure(fmt.Errorf("tool %s success but output marshal err: %w", t.info.Name, err))
	}

	res := &Result{Success: true, Data: data}
	if shower, ok := any(output).(FormShower); ok {
		res.ShowForm = shower.FormName()
	}

	return res
}

// Helper function to create an Invoker from a function.
func NewInvoker[T, O any](info Info, fn InvokerFunc[T, O]) Invoker {
	if info.Schema == nil {
		sch := schema.Get[T]()
		info.Schema = &sch
	}

	return &invoker[T, O]{
		info: info,
		fn:   fn,
	}
}
