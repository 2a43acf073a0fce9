package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/randalmurphal/formrules/pkg/formrules"
	"github.com/randalmurphal/formrules/pkg/formrules/config"
	frerrors "github.com/randalmurphal/formrules/pkg/formrules/errors"
	"github.com/randalmurphal/formrules/pkg/formrules/postfix"
	"github.com/randalmurphal/formrules/pkg/formrules/store"
)

// FormInfo describes a stored form in list responses.
type FormInfo struct {
	ID        string    `json:"id"`
	Revision  int       `json:"revision"`
	UpdatedAt time.Time `json:"updatedAt"`
	Size      int64     `json:"size"`
}

// ValidateRequest is the body of POST /forms/{id}/validate.
type ValidateRequest struct {
	Values map[string]any `json:"values"`
}

// FieldError is one failing field in a validation response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateResponse is the result of a validation pass.
type ValidateResponse struct {
	RunID    string            `json:"runId"`
	Valid    bool              `json:"valid"`
	Messages map[string]string `json:"messages"`
	Errors   []FieldError      `json:"errors"`
}

// EvaluateRequest is the body of POST /evaluate.
type EvaluateRequest struct {
	Expression string         `json:"expression"`
	Variables  map[string]any `json:"variables"`
	Options    map[string]any `json:"options,omitempty"`
}

// EvaluateResponse carries either a value or an error.
type EvaluateResponse struct {
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handlePut(ctx *fasthttp.RequestCtx, id string) {
	schema, err := config.Parse(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}
	if _, err := formrules.New(schema, s.validatorOptions(id)...); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}
	if err := store.PutSchema(s.store, id, schema); err != nil {
		writeError(ctx, storeStatus(err), err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleGet(ctx *fasthttp.RequestCtx, id string) {
	schema, err := store.GetSchema(s.store, id)
	if err != nil {
		writeError(ctx, storeStatus(err), err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, schema)
}

func (s *Server) handleDelete(ctx *fasthttp.RequestCtx, id string) {
	if err := s.store.Delete(id); err != nil {
		writeError(ctx, storeStatus(err), err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (s *Server) handleList(ctx *fasthttp.RequestCtx) {
	infos, err := s.store.List()
	if err != nil {
		writeError(ctx, storeStatus(err), err)
		return
	}
	out := make([]FormInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, FormInfo{
			ID:        info.FormID,
			Revision:  info.Revision,
			UpdatedAt: info.UpdatedAt,
			Size:      info.Size,
		})
	}
	writeJSON(ctx, fasthttp.StatusOK, out)
}

func (s *Server) handleValidate(ctx *fasthttp.RequestCtx, id string) {
	var req ValidateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	schema, err := store.GetSchema(s.store, id)
	if err != nil {
		writeError(ctx, storeStatus(err), err)
		return
	}
	v, err := formrules.New(schema, s.validatorOptions(id)...)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err)
		return
	}

	form := formrules.NewMapForm(rawValues(req.Values))
	report, err := v.Validate(context.Background(), form)
	if err != nil {
		writeError(ctx, errorStatus(err), err)
		return
	}

	resp := ValidateResponse{
		RunID:    report.RunID,
		Valid:    report.Valid(),
		Messages: report.Messages,
		Errors:   []FieldError{},
	}
	for _, e := range report.Errors() {
		resp.Errors = append(resp.Errors, FieldError{Field: e.Field, Message: e.Message})
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleEvaluate(ctx *fasthttp.RequestCtx) {
	var req EvaluateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	ruleOpts, err := formrules.PostfixOptions(config.NewOptions(req.Options))
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}
	opts := append(append([]postfix.Option{}, s.evaluatorOpts...), ruleOpts...)

	value, err := postfix.Evaluate(req.Expression, req.Variables, opts...)
	if err != nil {
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, EvaluateResponse{Error: err.Error()})
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, EvaluateResponse{Value: jsonValue(value)})
}

func (s *Server) validatorOptions(id string) []formrules.Option {
	opts := append([]formrules.Option{}, s.validatorOpts...)
	opts = append(opts, formrules.WithFormID(id))
	if len(s.evaluatorOpts) > 0 {
		opts = append(opts, formrules.WithEvaluatorOptions(s.evaluatorOpts...))
	}
	return opts
}

// rawValues renders submitted values the way a form holds them.
func rawValues(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = config.RawValue(v)
	}
	return out
}

// jsonValue replaces values encoding/json cannot represent.
func jsonValue(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return postfix.FormatOperand(f)
	}
	return v
}

func storeStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, store.ErrEmptyFormID):
		return fasthttp.StatusBadRequest
	case errors.Is(err, store.ErrStoreClosed):
		return fasthttp.StatusServiceUnavailable
	default:
		return fasthttp.StatusInternalServerError
	}
}

func errorStatus(err error) int {
	if frerrors.IsData(err) {
		return fasthttp.StatusUnprocessableEntity
	}
	return fasthttp.StatusInternalServerError
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, err error) {
	writeJSON(ctx, status, map[string]string{"error": err.Error()})
}
