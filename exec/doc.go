// Package exec is the one-stop entry point for asking questions about a
// table.
//
// It combines the sandbox ([github.com/jonwraymond/tableqa/code] with the
// yaegi engine), the package allow-list ([github.com/jonwraymond/tableqa/catalog])
// and the control loop ([github.com/jonwraymond/tableqa/workflow]) behind a
// single [Exec].
//
// # Basic Usage
//
//	df, err := duck.Load(ctx, logger, "sales.csv")
//	client, err := llm.New(llm.Config{Provider: llm.ProviderAnthropic})
//
//	ex, err := exec.New(exec.Options{Dataset: df, LLM: client})
//	res, err := ex.Ask(ctx, "Which region sold the most units?")
//	if errors.Is(err, workflow.ErrNoAnswer) {
//	    // every attempt failed; res.LastError says why
//	}
//	fmt.Println(res.Answer)
//
// # Batches
//
// AskBatch runs independent questions concurrently, each in its own
// session, and returns results in input order:
//
//	results, err := ex.AskBatch(ctx, []string{"Total units?", "Mean price?"})
//
// # Running code directly
//
// RunCode executes a snippet in the same sandbox the generated code uses:
//
//	res, err := ex.RunCode(ctx, `output_dict := map[string]any{"rows": df.Len()}`, 0)
package exec
