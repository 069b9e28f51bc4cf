// Package agentloop holds the steps of the tool-calling diagnosis agent:
// decide, execute or reject the tool call, interpret the result, respond.
package agentloop

import (
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

const (
	NodeDecide      = "decide"
	NodeExecuteTool = "execute_tool"
	NodeRejectTool  = "reject_tool"
	NodeInterpret   = "interpret"
	NodeRespond     = "respond"
)

const AgentSystemPrompt = "You are an expert statistical consultant. Your goal is to help a user " +
	"diagnose the assumptions of their statistical model. Based on the user's question, decide if one " +
	"of your available tools can help answer it. If so, call the appropriate tool. If not, provide a " +
	"text-based answer."

type State struct {
	Req      contractx.DiagnoseRequest
	Messages []*schema.Message

	Decision *schema.Message
	Call     *schema.ToolCall
	Result   contractx.ToolResult
	Plot     string
	Image    []byte

	Reply *schema.Message
}

func (s *State) toolFailed() bool {
	return s.Result.Error != ""
}
