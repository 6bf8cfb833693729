package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router, method string, handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithDB(ctx, r.db)
		ctx = xcontext.WithHTTPRequest(ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithResponseBox(ctx)

		func() {
			if req.Method != method {
				xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Method not allowed"))
				return
			}

			for _, m := range r.befores {
				newCtx, err := m(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}
				ctx = newCtx
			}

			var request Request
			var err error
			if method == http.MethodGet {
				err = bindQuery(req, &request)
			} else {
				err = bindBody(req, &request)
			}
			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind request of %s: %v", req.URL.Path, err)
				xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Invalid request"))
				return
			}

			resp, err := handler(ctx, &request)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}
			xcontext.SetResponse(ctx, resp)

			for _, m := range r.afters {
				newCtx, err := m(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}
				ctx = newCtx
			}
		}()

		writeResponse(ctx, w)

		for _, c := range r.closers {
			c(ctx)
		}
	}
}

func bindBody(req *http.Request, target any) error {
	if req.Body == nil {
		return nil
	}

	// An empty body is fine for requests without parameters.
	if err := json.NewDecoder(req.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// bindQuery fills the request struct from URL query parameters. Field names
// come from the json tag (or the lowercased field name when untagged).
func bindQuery(req *http.Request, target any) error {
	v := reflect.ValueOf(target).Elem()
	t := v.Type()
	if t.Kind() != reflect.Struct {
		return nil
	}

	query := req.URL.Query()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("json")
		if name == "" || name == "-" {
			continue
		}

		value := query.Get(name)
		if value == "" {
			continue
		}

		switch field.Type.Kind() {
		case reflect.String:
			v.Field(i).SetString(value)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			v.Field(i).SetInt(n)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return err
			}
			v.Field(i).SetUint(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			v.Field(i).SetBool(b)
		}
	}

	return nil
}

func writeResponse(ctx context.Context, w http.ResponseWriter) {
	resp := response{Code: 0, Data: xcontext.Response(ctx)}

	if err := xcontext.Error(ctx); err != nil {
		var errx errorx.Error
		if !errors.As(err, &errx) {
			xcontext.Logger(ctx).Errorf("Unexpected error: %v", err)
			errx = errorx.Unknown
		}
		resp.Code = int(errx.Code)
		resp.Error = errx.Message
		resp.Data = nil
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write response: %v", err)
	}
}

type response struct {
	Code  int    `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}
