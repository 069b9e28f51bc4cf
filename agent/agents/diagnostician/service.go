// Package diagnostician answers questions about a fitted model's assumptions,
// either directly or through a tool-calling agent that can render plots.
package diagnostician

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
	toolx "github.com/tanpawarit/statlingua/agent/tool"
)

type Config struct {
	// Tool configures plot rendering for the agent.
	Tool toolx.Config
}

type Diagnostician struct {
	handlers  contractx.HandlerResolver
	completer contractx.Completer
	toolCfg   toolx.Config

	diagnoseRunner compose.Runnable[contractx.DiagnoseRequest, contractx.DiagnosisResult]
	agentRunner    compose.Runnable[contractx.DiagnoseRequest, contractx.AgentResult]
}

func New(
	handlers contractx.HandlerResolver,
	completer contractx.Completer,
	cfg Config,
) (*Diagnostician, error) {
	if handlers == nil {
		return nil, errors.New("handler registry is required")
	}
	if completer == nil {
		return nil, errors.New("completer is required")
	}

	d := &Diagnostician{
		handlers:  handlers,
		completer: completer,
		toolCfg:   cfg.Tool,
	}

	ctx := context.Background()
	diagnoseRunner, err := d.compileDiagnoseGraph(ctx)
	if err != nil {
		return nil, err
	}
	d.diagnoseRunner = diagnoseRunner

	agentRunner, err := d.compileAgentGraph(ctx)
	if err != nil {
		return nil, err
	}
	d.agentRunner = agentRunner

	return d, nil
}

// Diagnose recommends diagnostic checks from the model summary in one completion call.
func (d *Diagnostician) Diagnose(ctx context.Context, req contractx.DiagnoseRequest) (contractx.DiagnosisResult, error) {
	out, err := d.diagnoseRunner.Invoke(ctx, req)
	if err != nil {
		return contractx.DiagnosisResult{}, err
	}
	return out, nil
}

// DiagnoseAgent lets the model call the plotting tool and interpret the result.
func (d *Diagnostician) DiagnoseAgent(ctx context.Context, req contractx.DiagnoseRequest) (contractx.AgentResult, error) {
	out, err := d.agentRunner.Invoke(ctx, req)
	if err != nil {
		return contractx.AgentResult{}, err
	}

	log.Info().Str("plot", out.Plot).Msg("agent diagnosis finished")
	return out, nil
}
