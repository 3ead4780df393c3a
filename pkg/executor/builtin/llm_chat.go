package builtin

import (
	"context"
	"fmt"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/proxyclient"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// LLMChatExecutor sends a single chat completion request to a configured
// OpenAI-compatible endpoint, routed through the same proxy adapter as the
// "http" node so all outbound traffic is subject to one set of network
// controls (spec §4.6 "llm_chat").
type LLMChatExecutor struct {
	Proxy *proxyclient.Client
}

// NodeType implements executor.NodeExecutor.
func (e *LLMChatExecutor) NodeType() string { return "llm_chat" }

// Execute implements executor.NodeExecutor.
func (e *LLMChatExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	endpoint := node.ConfigString("endpoint", "")
	model := node.ConfigString("model", "")
	temperature := node.ConfigFloat("temperature", 0.7)
	maxTokens := node.ConfigInt("max_tokens", 512)
	systemPrompt := node.ConfigString("system_prompt", "")

	prompt := "Hello, how can you help me?"
	if v, ok := input["prompt"]; ok {
		prompt = fmt.Sprintf("%v", v)
	} else if v, ok := input["text"]; ok {
		prompt = fmt.Sprintf("%v", v)
	}

	messages := []map[string]string{}
	if systemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": systemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	body := map[string]any{
		"model":    model,
		"messages": messages,
		"options": map[string]any{
			"temperature": temperature,
			"num_predict": maxTokens,
		},
	}

	resp, err := e.Proxy.Do(ctx, proxyclient.Request{
		URL:     endpoint + "/chat/completions",
		Method:  "POST",
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	})
	if err != nil {
		return workflow.Result{"error": err.Error()}, nil
	}

	if resp.Status != 200 {
		return workflow.Result{"error": fmt.Sprintf("API request failed: %d - %s", resp.Status, resp.Text)}, nil
	}

	parsed, ok := resp.ParsedJSON.(map[string]any)
	if !ok {
		return workflow.Result{"error": "malformed chat completion response"}, nil
	}

	choices, _ := parsed["choices"].([]any)
	if len(choices) == 0 {
		return workflow.Result{"error": "chat completion response had no choices"}, nil
	}
	choice, _ := choices[0].(map[string]any)
	message, _ := choice["message"].(map[string]any)
	content := fmt.Sprintf("%v", message["content"])

	var totalTokens float64
	if usage, ok := parsed["usage"].(map[string]any); ok {
		totalTokens = asFloat(usage["total_tokens"])
	}

	return workflow.Result{
		"response":      content,
		"tokens_used":   totalTokens,
		"model_used":    model,
		"full_response": parsed,
	}, nil
}
