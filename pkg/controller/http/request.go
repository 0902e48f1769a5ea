package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/usecase"
	"github.com/secmon-lab/aegis/pkg/utils/safe"
)

const (
	maxRequestBytes = 32 << 20
	dateLayout      = "2006-01-02"
)

// requestValidator checks the shape of request bodies. Required fields and
// catalog values are checked by the record validator of the use case.
var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeRequest reads a JSON body, or a multipart form whose "data" field
// holds the JSON and whose "files" fields hold attachments.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) ([]usecase.Attachment, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var files []usecase.Attachment
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxRequestBytes); err != nil {
			return nil, goerr.Wrap(model.ErrInvalidInput, "failed to parse multipart form", goerr.V("error", err.Error()))
		}
		if data := r.FormValue("data"); data != "" {
			if err := json.Unmarshal([]byte(data), dst); err != nil {
				return nil, goerr.Wrap(model.ErrInvalidInput, "invalid data field", goerr.V("error", err.Error()))
			}
		}
		var err error
		if files, err = readFiles(r, r.MultipartForm.File["files"]); err != nil {
			return nil, err
		}
	} else if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return nil, goerr.Wrap(model.ErrInvalidInput, "invalid JSON body", goerr.V("error", err.Error()))
	}

	if err := checkShape(dst); err != nil {
		return nil, err
	}
	return files, nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func readFiles(r *http.Request, headers []*multipart.FileHeader) ([]usecase.Attachment, error) {
	files := make([]usecase.Attachment, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open uploaded file", goerr.V("filename", fh.Filename))
		}
		data, err := io.ReadAll(f)
		safe.Close(r.Context(), f)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read uploaded file", goerr.V("filename", fh.Filename))
		}
		files = append(files, usecase.Attachment{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

// checkShape runs the struct tags of a request and reports violations as
// field errors
func checkShape(dst any) error {
	err := requestValidator.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return goerr.Wrap(err, "failed to validate request")
	}
	out := make(model.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &model.FieldError{
			Field:  fe.Field(),
			Err:    model.ErrInvalidInput,
			Detail: fe.Tag(),
		})
	}
	return out
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerr.Wrap(model.ErrInvalidInput, "invalid id", goerr.V(model.IDKey, raw))
	}
	return id, nil
}

func hasURLParam(r *http.Request, name string) bool {
	return chi.URLParam(r, name) != ""
}

func pathUserID(r *http.Request) string {
	return chi.URLParam(r, "userID")
}

// parseWith runs a types parser and reports a failure as invalid input on field
func parseWith[T ~string](field, s string, parse func(string) (T, error)) (T, error) {
	v, err := parse(s)
	if err != nil {
		return "", goerr.Wrap(model.ErrInvalidInput, err.Error(), goerr.V(model.FieldKey, field), goerr.V(model.ValueKey, s))
	}
	return v, nil
}

// parseEnum checks s against a catalog that has no dedicated parser
func parseEnum[T ~string](field, s string, valid func(T) bool) (T, error) {
	return parseWith(field, s, func(s string) (T, error) {
		return types.ParseCatalogValue(s, valid)
	})
}

// parseTime accepts a plain date or an RFC 3339 timestamp
func parseTime(field, s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(model.ErrInvalidInput, "invalid date", goerr.V(model.FieldKey, field), goerr.V(model.ValueKey, s))
	}
	return t, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerr.Wrap(model.ErrInvalidInput, "invalid number", goerr.V(model.FieldKey, name), goerr.V(model.ValueKey, raw))
	}
	return n, nil
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

// listOptions maps the common list query parameters: area, status, type,
// user_id, since and until
func listOptions(r *http.Request) ([]interfaces.ListOption, error) {
	q := r.URL.Query()
	var opts []interfaces.ListOption
	if v := q.Get("area"); v != "" {
		opts = append(opts, interfaces.WithArea(v))
	}
	if v := q.Get("status"); v != "" {
		opts = append(opts, interfaces.WithStatus(v))
	}
	if v := q.Get("type"); v != "" {
		opts = append(opts, interfaces.WithType(v))
	}
	if v := q.Get("user_id"); v != "" {
		opts = append(opts, interfaces.WithUserID(v))
	}
	if v := q.Get("since"); v != "" {
		t, err := parseTime("since", v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, interfaces.WithSince(t))
	}
	if v := q.Get("until"); v != "" {
		t, err := parseTime("until", v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, interfaces.WithUntil(t))
	}
	return opts, nil
}

// convertAll maps a slice of records into response values
func convertAll[T any, R any](items []T, f func(T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = f(item)
	}
	return out
}
