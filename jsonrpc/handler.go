package jsonrpc

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/habiliai/agenteval/internal/mylog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type (
	handlerOptions struct {
		logger   *mylog.Logger
		gatherer prometheus.Gatherer
	}
	HandlerOption func(*handlerOptions)
)

func WithLogger(logger *mylog.Logger) HandlerOption {
	return func(o *handlerOptions) {
		o.logger = logger
	}
}

// WithGatherer serves the gatherer's metrics on /metrics.
func WithGatherer(gatherer prometheus.Gatherer) HandlerOption {
	return func(o *handlerOptions) {
		o.gatherer = gatherer
	}
}

// NewHandler routes /rpc to the Eval service and /health to a liveness probe.
// /metrics is mounted only with WithGatherer.
func NewHandler(backend Backend, opts ...HandlerOption) (http.Handler, error) {
	o := handlerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = mylog.Discard()
	}
	logger := o.logger

	rpcServer, err := newRPCServer(backend, logger)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Handle("/rpc", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		rpcServer.ServeHTTP(w, r.WithContext(ctx))
	})).Methods(http.MethodPost)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Warn("failed to write health response", mylog.Err(err))
		}
	}).Methods(http.MethodGet)
	if o.gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(o.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	return newRecoveryHandler(logger)(router), nil
}
