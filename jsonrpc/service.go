package jsonrpc

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/rpc/v2"
	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/mylog"
	"github.com/habiliai/agenteval/stage"
)

const servicePrefix = "habiliai.agenteval.v1"

type (
	// Backend is the evaluator surface served over JSON-RPC.
	Backend interface {
		Stages() *stage.Registry
		RunFullPipeline(ctx context.Context, product entity.ProductDescription) (*entity.NotificationReport, error)
		RunDemoPipeline(ctx context.Context, product entity.ProductDescription) (*entity.NotificationReport, error)
	}

	JsonRpcService struct {
		backend Backend
		invoker stage.Invoker
	}

	InvokeRequest struct {
		Endpoint string         `json:"endpoint"`
		Args     map[string]any `json:"args,omitempty"`
	}

	// InvokeResponse is the execution envelope of one stage call.
	InvokeResponse struct {
		ExecutionID string `json:"execution_id"`
		Status      string `json:"status"`
		Result      any    `json:"result"`
	}

	GetSchemasRequest struct{}

	GetSchemasResponse struct {
		Stages []stage.Schema `json:"stages"`
	}

	RunPipelineRequest struct {
		Product entity.ProductDescription `json:"product"`
	}
)

func (s *JsonRpcService) Invoke(r *http.Request, args *InvokeRequest, reply *InvokeResponse) error {
	if args.Endpoint == "" {
		return errors.Wrapf(errors.ErrInvalidParams, "endpoint is required")
	}

	raw, err := s.invoker.Invoke(r.Context(), args.Endpoint, args.Args)
	if err != nil {
		return err
	}

	m, ok := raw.(map[string]any)
	if !ok {
		*reply = InvokeResponse{
			ExecutionID: uuid.NewString(),
			Status:      stage.StatusSucceeded,
			Result:      raw,
		}
		return nil
	}

	reply.ExecutionID, _ = m["execution_id"].(string)
	reply.Status, _ = m["status"].(string)
	reply.Result = m["result"]
	return nil
}

func (s *JsonRpcService) GetSchemas(_ *http.Request, _ *GetSchemasRequest, reply *GetSchemasResponse) error {
	reply.Stages = s.backend.Stages().Schemas()
	return nil
}

func (s *JsonRpcService) RunPipeline(r *http.Request, args *RunPipelineRequest, reply *entity.NotificationReport) error {
	report, err := s.backend.RunFullPipeline(r.Context(), args.Product)
	if err != nil {
		return err
	}
	*reply = *report
	return nil
}

func (s *JsonRpcService) RunDemo(r *http.Request, args *RunPipelineRequest, reply *entity.NotificationReport) error {
	report, err := s.backend.RunDemoPipeline(r.Context(), args.Product)
	if err != nil {
		return err
	}
	*reply = *report
	return nil
}

// RegisterJsonRpcService serves the backend's stage table. Stage calls run in
// process, never through the backend's own (possibly remote) invoker.
func RegisterJsonRpcService(server *rpc.Server, backend Backend, logger *mylog.Logger) error {
	svc := &JsonRpcService{
		backend: backend,
		invoker: stage.NewLocalInvoker(backend.Stages(), logger),
	}

	return errors.Wrapf(server.RegisterService(svc, servicePrefix), "failed to register jsonrpc service")
}
