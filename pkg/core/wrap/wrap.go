//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package wrap instruments model calls so that every successful call is
// logged without explicit Log calls at each site.
//
//	ask := wrap.Wrap(logger, wrap.Spec{Model: "gpt-4o", Framework: "openai"},
//	    func(ctx context.Context, prompt string) (openai.ChatCompletionResponse, error) {
//	        return client.CreateChatCompletion(ctx, request(prompt))
//	    })
//
//	resp, err := ask(ctx, "What is 2+2?")
//
// The wrapper measures latency and extracts the output text, token counts and
// model name from the result when it recognizes its shape. Logging problems
// are reported as warnings and never change what the wrapped call returns.
package wrap

import (
	"context"
	"fmt"
	"time"

	"github.com/Chavda-Mitul/AI-Logger/internal/logging"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
	"github.com/sashabaranov/go-openai"
)

var logger = logging.GetLogger("ailog.wrap")

const agent = "wrap"

// Logger is the part of a compliance logger used by the wrapper.
type Logger interface {
	Log(ctx context.Context, interaction types.Interaction) (*types.Acknowledgment, error)
}

// Spec describes the model behind a wrapped call.
type Spec struct {
	// Model is logged unless the result reports its own model and
	// ModelVersion is empty.
	Model        string
	ModelVersion string
	Framework    string
}

// Func is a model call taking a prompt.
type Func[T any] func(ctx context.Context, prompt string) (T, error)

// Extracted is what the wrapper could learn from a call's result.
type Extracted struct {
	Output       string
	Model        string
	TokensInput  *int64
	TokensOutput *int64
}

// Wrap returns a Func that calls fn and logs the interaction through l. Calls
// that fail are not logged.
func Wrap[T any](l Logger, spec Spec, fn Func[T]) Func[T] {
	return func(ctx context.Context, prompt string) (T, error) {
		start := time.Now()
		result, err := fn(ctx, prompt)
		if err != nil {
			return result, err
		}
		latency := time.Since(start).Milliseconds()

		ex := Extract(result)
		model := spec.Model
		if ex.Model != "" && spec.ModelVersion == "" {
			model = ex.Model
		}

		interaction := types.Interaction{
			Prompt:       prompt,
			Output:       ex.Output,
			Model:        model,
			LatencyMs:    &latency,
			TokensInput:  ex.TokensInput,
			TokensOutput: ex.TokensOutput,
		}
		if spec.ModelVersion != "" {
			interaction.ModelVersion = types.String(spec.ModelVersion)
		}
		if spec.Framework != "" {
			interaction.Framework = types.String(spec.Framework)
		}

		if _, lerr := l.Log(ctx, interaction); lerr != nil {
			logger.Warnw(agent, "Wrap", "failed to log wrapped call", "model", model, "error", lerr.Error())
		}
		return result, nil
	}
}

// Extract reads the output and usage from a model call result. Recognized
// shapes are strings, go-openai chat and completion responses, values with a
// GetContent method, and fmt.Stringers; anything else is formatted with %v.
func Extract(result any) Extracted {
	switch r := result.(type) {
	case string:
		return Extracted{Output: r}
	case openai.ChatCompletionResponse:
		return fromChat(&r)
	case *openai.ChatCompletionResponse:
		if r == nil {
			return Extracted{}
		}
		return fromChat(r)
	case openai.CompletionResponse:
		return fromCompletion(&r)
	case *openai.CompletionResponse:
		if r == nil {
			return Extracted{}
		}
		return fromCompletion(r)
	case interface{ GetContent() string }:
		return Extracted{Output: r.GetContent()}
	case fmt.Stringer:
		return Extracted{Output: r.String()}
	case nil:
		return Extracted{}
	default:
		return Extracted{Output: fmt.Sprintf("%v", r)}
	}
}

func fromChat(r *openai.ChatCompletionResponse) Extracted {
	ex := usage(r.Usage)
	ex.Model = r.Model
	if len(r.Choices) > 0 {
		ex.Output = r.Choices[0].Message.Content
	}
	return ex
}

func fromCompletion(r *openai.CompletionResponse) Extracted {
	var ex Extracted
	if r.Usage != nil {
		ex = usage(*r.Usage)
	}
	ex.Model = r.Model
	if len(r.Choices) > 0 {
		ex.Output = r.Choices[0].Text
	}
	return ex
}

func usage(u openai.Usage) Extracted {
	if u.PromptTokens == 0 && u.CompletionTokens == 0 {
		return Extracted{}
	}
	in, out := int64(u.PromptTokens), int64(u.CompletionTokens)
	return Extracted{TokensInput: &in, TokensOutput: &out}
}
