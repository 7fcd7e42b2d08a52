package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"feedgate/backend/app/dto"
	"feedgate/backend/app/validation"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

var errNotObject = errors.New("request body must be a JSON object")

func writeValidation(w http.ResponseWriter, msg string, fields []validation.FieldError) {
	resp := dto.ValidationErrorResponse{Error: msg}
	for _, f := range fields {
		resp.Fields = append(resp.Fields, dto.FieldError{Field: f.Field, Tag: f.Tag, Message: f.Message})
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func writeValidationErr(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeValidation(w, "validation failed", verr.Fields)
		return
	}
	writeValidation(w, err.Error(), nil)
}

// readBody returns the trimmed request body, nil when it is empty.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

func isObject(raw []byte) bool {
	return len(raw) > 0 && raw[0] == '{' && json.Valid(raw)
}

// BindJSON decodes the body into T, validates it and stores it for Body[T].
// Anything but a JSON object that satisfies T's rules is answered with 422.
func BindJSON[T any](next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := readBody(w, r)
		if err != nil {
			writeValidation(w, err.Error(), nil)
			return
		}
		if !isObject(raw) {
			writeValidation(w, errNotObject.Error(), nil)
			return
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			writeValidation(w, "request body has the wrong shape", nil)
			return
		}
		if err := validation.Struct(&v); err != nil {
			writeValidationErr(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), bodyKey, &v)))
	})
}

// RejectNonObject guards routes that take no body: an empty body passes, a
// body that is present must still be a JSON object.
func RejectNonObject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := readBody(w, r)
		if err != nil {
			writeValidation(w, err.Error(), nil)
			return
		}
		if raw != nil && !isObject(raw) {
			writeValidation(w, errNotObject.Error(), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUUIDParam rejects requests whose {name} path parameter is not a uuid.
func RequireUUIDParam(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := uuid.Validate(chi.URLParam(r, name)); err != nil {
				writeValidation(w, "validation failed", []validation.FieldError{{
					Field: name, Tag: "uuid", Message: name + " must be a valid identifier",
				}})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// FeedParams binds the page/limit/sort query of the feed routes.
type FeedParams struct {
	DefaultLimit int
	MaxLimit     int
}

func (p FeedParams) parse(r *http.Request) (dto.FeedQuery, []validation.FieldError) {
	q := dto.FeedQuery{Page: 1, Limit: p.DefaultLimit, Sort: "date"}
	if q.Limit <= 0 {
		q.Limit = 5
	}
	var bad []validation.FieldError
	values := r.URL.Query()

	if s := values.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			bad = append(bad, validation.FieldError{Field: "page", Tag: "numeric", Message: "page must be a number"})
		} else {
			q.Page = n
		}
	}
	if s := values.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			bad = append(bad, validation.FieldError{Field: "limit", Tag: "numeric", Message: "limit must be a number"})
		} else {
			q.Limit = n
		}
	}
	if s := values.Get("sort"); s != "" {
		q.Sort = s
	}
	return q, bad
}

// Bind validates the feed query and stores it for Query.
func (p FeedParams) Bind(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, bad := p.parse(r)
		if len(bad) > 0 {
			writeValidation(w, "validation failed", bad)
			return
		}
		if err := validation.Struct(&q); err != nil {
			writeValidationErr(w, err)
			return
		}
		if p.MaxLimit > 0 && q.Limit > p.MaxLimit {
			writeValidation(w, "validation failed", []validation.FieldError{{
				Field: "limit", Tag: "max", Message: fmt.Sprintf("limit must be at most %d", p.MaxLimit),
			}})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), queryKey, q)))
	})
}

// Query returns the feed query bound by FeedParams.Bind.
func Query(ctx context.Context) (dto.FeedQuery, bool) {
	q, ok := ctx.Value(queryKey).(dto.FeedQuery)
	return q, ok
}
