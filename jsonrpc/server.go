package jsonrpc

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/mylog"
)

type (
	StartTimeCtxKey string
)

var (
	startTimeCtxKey StartTimeCtxKey = "jsonrpc.startTime"
)

// errorKinds maps sentinels to json2 codes. The kind travels in the error
// data so clients can restore the sentinel.
var errorKinds = []struct {
	err  error
	code json2.ErrorCode
	kind string
}{
	{errors.ErrInvalidParams, json2.E_BAD_PARAMS, "invalid_params"},
	{errors.ErrMalformedResult, json2.E_BAD_PARAMS, "malformed_result"},
	{errors.ErrInvalidRequest, json2.E_INVALID_REQ, "invalid_request"},
	{errors.ErrNotFound, json2.E_SERVER, "not_found"},
	{errors.ErrEmptyResult, json2.E_SERVER, "empty_result"},
	{errors.ErrExternalCall, json2.E_SERVER, "external_call"},
	{errors.ErrFatalAssembly, json2.E_INTERNAL, "fatal_assembly"},
	{errors.ErrInternal, json2.E_INTERNAL, "internal"},
}

func toRPCError(err error) error {
	if err == nil {
		return nil
	}

	var rpcErr *json2.Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	e := &json2.Error{
		Code:    json2.E_INTERNAL,
		Message: err.Error(),
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			e.Code = k.code
			e.Data = k.kind
			break
		}
	}

	return e
}

func newRPCServer(backend Backend, logger *mylog.Logger) (*rpc.Server, error) {
	server := rpc.NewServer()
	if err := RegisterJsonRpcService(server, backend, logger); err != nil {
		return nil, err
	}

	server.RegisterBeforeFunc(func(i *rpc.RequestInfo) {
		startTime := time.Now()
		ctx := context.WithValue(i.Request.Context(), startTimeCtxKey, startTime)
		i.Request = i.Request.WithContext(ctx)
	})
	server.RegisterAfterFunc(func(i *rpc.RequestInfo) {
		logger := logger.WithGroup("jsonrpc")
		if startTime, ok := i.Request.Context().Value(startTimeCtxKey).(time.Time); ok {
			logger = logger.With(slog.Duration("duration", time.Since(startTime)))
		}
		if i.Error != nil {
			logger = logger.With(mylog.Err(i.Error))
		}
		logger.Info("[JSON-RPC] call",
			slog.Int("statusCode", i.StatusCode),
			slog.String("method", i.Method),
			slog.Bool("error", i.Error != nil),
		)
	})
	server.RegisterCodec(json2.NewCustomCodecWithErrorMapper(
		rpc.DefaultEncoderSelector,
		func(err error) error {
			if err == nil {
				return nil
			}
			logger.Error("[JSON-RPC] error", mylog.Err(err))
			return toRPCError(err)
		},
	), "application/json")

	return server, nil
}
