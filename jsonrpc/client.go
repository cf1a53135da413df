package jsonrpc

import (
	"context"
	"net/http"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/stage"
	"github.com/ybbus/jsonrpc/v3"
)

// RemoteInvoker calls a JSON-RPC control plane. It satisfies stage.Invoker,
// so a pipeline can run its stages on another node.
type RemoteInvoker struct {
	client jsonrpc.RPCClient
}

var _ stage.Invoker = (*RemoteInvoker)(nil)

func NewRemoteInvoker(url string) *RemoteInvoker {
	return NewRemoteInvokerWithHttpClient(url, http.DefaultClient)
}

func NewRemoteInvokerWithHttpClient(url string, httpClient *http.Client) *RemoteInvoker {
	client := jsonrpc.NewClientWithOpts(url, &jsonrpc.RPCClientOpts{
		HTTPClient: httpClient,
	})
	return &RemoteInvoker{
		client: client,
	}
}

// Invoke returns the execution envelope produced by the server.
func (c *RemoteInvoker) Invoke(ctx context.Context, endpoint string, args map[string]any) (any, error) {
	var reply InvokeResponse
	if err := c.call(ctx, &reply, "Invoke", &InvokeRequest{Endpoint: endpoint, Args: args}); err != nil {
		return nil, err
	}
	return stage.Envelope(reply.ExecutionID, reply.Result), nil
}

func (c *RemoteInvoker) GetSchemas(ctx context.Context) ([]stage.Schema, error) {
	var reply GetSchemasResponse
	if err := c.call(ctx, &reply, "GetSchemas", &GetSchemasRequest{}); err != nil {
		return nil, err
	}
	return reply.Stages, nil
}

func (c *RemoteInvoker) RunPipeline(ctx context.Context, product entity.ProductDescription) (*entity.NotificationReport, error) {
	var report entity.NotificationReport
	if err := c.call(ctx, &report, "RunPipeline", &RunPipelineRequest{Product: product}); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *RemoteInvoker) RunDemo(ctx context.Context, product entity.ProductDescription) (*entity.NotificationReport, error) {
	var report entity.NotificationReport
	if err := c.call(ctx, &report, "RunDemo", &RunPipelineRequest{Product: product}); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *RemoteInvoker) call(ctx context.Context, out any, method string, request any) error {
	resp, err := c.client.Call(ctx, servicePrefix+"."+method, request)
	if resp != nil && resp.Error != nil {
		return errors.Wrapf(fromRPCError(resp.Error), "%s: %s", method, resp.Error.Message)
	}
	if err != nil {
		return errors.Wrapf(errors.ErrExternalCall, "%s: %v", method, err)
	}

	if err := resp.GetObject(out); err != nil {
		return errors.Wrapf(errors.ErrMalformedResult, "%s: %v", method, err)
	}
	return nil
}

// fromRPCError restores the sentinel named in the error data.
func fromRPCError(e *jsonrpc.RPCError) error {
	if kind, ok := e.Data.(string); ok {
		for _, k := range errorKinds {
			if k.kind == kind {
				return k.err
			}
		}
	}
	return errors.ErrExternalCall
}
