package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/habiliai/agenteval"
	"github.com/habiliai/agenteval/config"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/mylog"
	"github.com/habiliai/agenteval/jsonrpc"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	registry   string
	maxResults int
	output     string
	logLevel   string
	nodeID     string
	remote     string
}

type productFlags struct {
	name     string
	domain   string
	oneLiner string
}

func newCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "agenteval",
		Short:         "Evaluate which agent frameworks fit a product",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.registry, "registry", "", "Registry source: a YAML/JSON file or sqlite:<path> (default: built-in)")
	pf.IntVar(&flags.maxResults, "max-results", 0, "Maximum number of frameworks to evaluate")
	pf.StringVarP(&flags.output, "output", "o", "json", "Output format: json or yaml")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&flags.nodeID, "node-id", "", "Prefix stage endpoints with <node-id>.")
	pf.StringVar(&flags.remote, "remote", "", "JSON-RPC endpoint of a remote control plane to run stages on")

	cmd.AddCommand(
		newRunCmd(flags),
		newDemoCmd(flags),
		newSearchCmd(flags),
		newSimulateCmd(flags),
		newStagesCmd(flags),
		newServeCmd(flags),
		newMCPCmd(flags),
	)

	return cmd
}

func (p *productFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.name, "name", "", "Product name")
	cmd.Flags().StringVar(&p.domain, "domain", "", "Product domain, e.g. \"B2B SaaS\"")
	cmd.Flags().StringVar(&p.oneLiner, "one-liner", "", "One sentence describing the product")
	for _, name := range []string{"name", "domain", "one-liner"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func (p *productFlags) product() agenteval.ProductDescription {
	return agenteval.ProductDescription{
		Name:     p.name,
		Domain:   p.domain,
		OneLiner: p.oneLiner,
	}
}

// newEvaluator resolves every config section from the environment and lets
// command line flags override them.
func newEvaluator(ctx context.Context, flags *rootFlags, extra ...agenteval.Option) (*agenteval.Evaluator, error) {
	logConfig := config.NewLogConfig()
	modelConfig := config.NewModelConfig()
	registryConfig := config.NewRegistryConfig()
	discoveryConfig := config.NewDiscoveryConfig()
	serverConfig := config.NewServerConfig()
	if err := resolveAll(logConfig, modelConfig, registryConfig, discoveryConfig, serverConfig); err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		logConfig.LogLevel = flags.logLevel
	}
	if flags.registry != "" {
		registryConfig.Path = flags.registry
	}
	if flags.maxResults > 0 {
		registryConfig.MaxResults = flags.maxResults
	}
	if flags.remote != "" {
		serverConfig.RemoteURL = flags.remote
	}

	logger := mylog.NewLogger(logConfig.LogLevel, logConfig.LogHandler)
	opts := []agenteval.Option{
		agenteval.WithLogger(logger),
		agenteval.WithModelConfig(modelConfig),
		agenteval.WithRegistryConfig(registryConfig),
		agenteval.WithDiscoveryConfig(discoveryConfig),
		agenteval.WithNodeID(flags.nodeID),
	}
	if serverConfig.RemoteURL != "" {
		logger.Info("running stages on a remote control plane", "url", serverConfig.RemoteURL)
		opts = append(opts, agenteval.WithInvoker(jsonrpc.NewRemoteInvoker(serverConfig.RemoteURL)))
	}

	return agenteval.NewEvaluator(ctx, append(opts, extra...)...)
}

func printOutput(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode output")
	}

	switch format {
	case "json", "":
	case "yaml", "yml":
		if data, err = yaml.JSONToYAML(data); err != nil {
			return errors.Wrapf(err, "failed to encode output as yaml")
		}
	default:
		return errors.Errorf("unknown output format %q", format)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}

func resolveAll(logConfig *config.LogConfig, modelConfig *config.ModelConfig, registryConfig *config.RegistryConfig,
	discoveryConfig *config.DiscoveryConfig, serverConfig *config.ServerConfig) error {
	if err := config.Resolve(logConfig); err != nil {
		return err
	}
	if err := config.Resolve(modelConfig); err != nil {
		return err
	}
	if err := config.Resolve(registryConfig); err != nil {
		return err
	}
	if err := config.Resolve(discoveryConfig); err != nil {
		return err
	}
	return config.Resolve(serverConfig)
}
