//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package types defines the records exchanged between applications, the SDK
// loggers, and the remote logging API.
package types

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Chavda-Mitul/AI-Logger/pkg/common"
	"github.com/go-playground/validator/v10"
	"github.com/mohae/deepcopy"
)

// LogEntry is the wire form of one AI interaction: a mapping of string keys to
// JSON-serializable values. An entry must not be modified once it has been
// handed to a logger.
type LogEntry map[string]interface{}

// Interaction describes one call to an AI model. Prompt, Output, and Model are
// required; the remaining fields are omitted from the entry when nil.
type Interaction struct {
	Prompt         string                 `json:"prompt" yaml:"prompt" validate:"required"`
	Output         string                 `json:"output" yaml:"output" validate:"required"`
	Model          string                 `json:"model" yaml:"model" validate:"required"`
	ModelVersion   *string                `json:"modelVersion,omitempty" yaml:"modelVersion,omitempty"`
	Confidence     *float64               `json:"confidence,omitempty" yaml:"confidence,omitempty" validate:"omitempty,finite"`
	LatencyMs      *int64                 `json:"latencyMs,omitempty" yaml:"latencyMs,omitempty"`
	TokensInput    *int64                 `json:"tokensInput,omitempty" yaml:"tokensInput,omitempty"`
	TokensOutput   *int64                 `json:"tokensOutput,omitempty" yaml:"tokensOutput,omitempty"`
	UserIdentifier *string                `json:"userIdentifier,omitempty" yaml:"userIdentifier,omitempty"`
	SessionID      *string                `json:"sessionId,omitempty" yaml:"sessionId,omitempty"`
	Framework      *string                `json:"framework,omitempty" yaml:"framework,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty" validate:"omitempty,jsonvalue"`
}

// Acknowledgment is returned by buffered logging before the entry has been
// delivered. ID and CreatedAt are generated locally and are provisional.
type Acknowledgment struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Buffered  bool   `json:"buffered"`
}

// NewAcknowledgment synthesizes a provisional acknowledgment for an entry
// accepted at now.
func NewAcknowledgment(now time.Time) *Acknowledgment {
	return &Acknowledgment{
		ID:        "local-" + strconv.FormatInt(now.UnixMilli(), 10),
		CreatedAt: now.UTC().Format("2006-01-02T15:04:05.000000Z"),
		Buffered:  true,
	}
}

// Response is the server's confirmation of a single, unbuffered log call.
type Response struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names ("prompt") rather than Go names ("Prompt")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", isFinite)
	_ = v.RegisterValidation("jsonvalue", isJSONEncodable)
	return v
}

// isFinite rejects NaN and ±Inf, which JSON cannot represent.
func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isJSONEncodable(fl validator.FieldLevel) bool {
	_, err := json.Marshal(fl.Field().Interface())
	return err == nil
}

var reasons = map[string]string{
	"required":  "is required and must be a non-empty string",
	"finite":    "must be a finite number",
	"jsonvalue": "must contain only JSON-serializable values",
}

// Validate checks that the required fields are non-empty and that the entry
// can be encoded as JSON: Confidence must be finite and Metadata must hold
// only JSON-serializable values. The first offending field, in declaration
// order, is reported as a [common.InvalidArgumentError].
func (i *Interaction) Validate() error {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		reason, ok := reasons[verrs[0].Tag()]
		if !ok {
			reason = "failed " + verrs[0].Tag() + " validation"
		}
		return common.NewInvalidArgument(verrs[0].Field(), reason)
	}
	return common.NewInvalidArgument("interaction", err.Error())
}

// Entry builds the compliance wire entry. Metadata is deep-copied so that the
// caller may keep mutating its own map after the entry is enqueued.
func (i *Interaction) Entry() LogEntry {
	entry := LogEntry{
		"prompt": i.Prompt,
		"output": i.Output,
		"model":  i.Model,
	}
	putString(entry, "modelVersion", i.ModelVersion)
	if i.Confidence != nil {
		entry["confidence"] = *i.Confidence
	}
	putInt(entry, "latencyMs", i.LatencyMs)
	putInt(entry, "tokensInput", i.TokensInput)
	putInt(entry, "tokensOutput", i.TokensOutput)
	putString(entry, "userIdentifier", i.UserIdentifier)
	putString(entry, "sessionId", i.SessionID)
	putString(entry, "framework", i.Framework)
	if i.Metadata != nil {
		entry["metadata"] = deepcopy.Copy(i.Metadata).(map[string]interface{})
	}
	return entry
}

// SimpleEntry builds the entry accepted by the unbuffered /log endpoint, which
// knows only the core fields plus userId, latencyMs and metadata.
func (i *Interaction) SimpleEntry() LogEntry {
	entry := LogEntry{
		"prompt": i.Prompt,
		"output": i.Output,
		"model":  i.Model,
	}
	putString(entry, "userId", i.UserIdentifier)
	putInt(entry, "latencyMs", i.LatencyMs)
	if i.Metadata != nil {
		entry["metadata"] = deepcopy.Copy(i.Metadata).(map[string]interface{})
	}
	return entry
}

func putString(entry LogEntry, key string, v *string) {
	if v != nil {
		entry[key] = *v
	}
}

func putInt(entry LogEntry, key string, v *int64) {
	if v != nil {
		entry[key] = *v
	}
}

// String returns a pointer to s, for filling optional Interaction fields.
func String(s string) *string { return &s }

// Int64 returns a pointer to n, for filling optional Interaction fields.
func Int64(n int64) *int64 { return &n }

// Float64 returns a pointer to f, for filling optional Interaction fields.
func Float64(f float64) *float64 { return &f }
