package code_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/tableqa/code"
	"github.com/jonwraymond/tableqa/frame"
)

// staticEngine returns a fixed value, standing in for an interpreter.
type staticEngine struct{ value any }

func (e staticEngine) Execute(_ context.Context, _ code.ExecuteParams, ns code.Namespace) (code.ExecuteResult, error) {
	fmt.Fprintln(ns.Stdout(), "rows:", ns.Dataset().Len())
	return code.ExecuteResult{Value: e.value}, nil
}

func Example_executeParams() {
	params := code.ExecuteParams{
		Code:    `output_dict := map[string]any{"rows": df.Len()}`,
		Timeout: 10 * time.Second,
	}

	fmt.Printf("Timeout: %v\n", params.Timeout)
	// Output:
	// Timeout: 10s
}

func ExampleDefaultExecutor_ExecuteCode() {
	df := frame.MustNew(frame.Ints("units", []int64{3, 5}))
	exec, err := code.NewDefaultExecutor(code.Config{
		Engine:    staticEngine{value: map[string]any{"total": 8}},
		Dataset:   df,
		AllowList: []string{"tableqa/frame"},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	result, err := exec.ExecuteCode(context.Background(), code.ExecuteParams{Code: "..."})
	fmt.Println(result.Value, err)
	fmt.Print(result.Stdout)
	// Output:
	// map[total:8] <nil>
	// rows: 2
}

func ExampleDefaultExecutor_ExecuteCode_missingOutput() {
	exec, _ := code.NewDefaultExecutor(code.Config{
		Engine:    staticEngine{},
		Dataset:   frame.MustNew(),
		AllowList: []string{"fmt"},
	})

	_, err := exec.ExecuteCode(context.Background(), code.ExecuteParams{Code: "x := 1"})
	fmt.Println(err)
	fmt.Println(errors.Is(err, code.ErrMissingOutput))
	// Output:
	// missing output_dict
	// true
}

func Example_errors() {
	// code.ErrConfiguration is returned when Config is invalid
	fmt.Printf("ErrConfiguration: %v\n", code.ErrConfiguration)
	// code.ErrLimitExceeded is returned when limits are hit
	fmt.Printf("ErrLimitExceeded: %v\n", code.ErrLimitExceeded)
	// Output:
	// ErrConfiguration: configuration error
	// ErrLimitExceeded: limit exceeded
}
