package conversation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/parley/internal/chat"
	"github.com/parleyhq/parley/internal/config"
	"github.com/parleyhq/parley/internal/provider"
	"github.com/parleyhq/parley/internal/tool"
)

// mockProvider implements provider.Provider for testing
type mockProvider struct {
	generateFunc func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error)
	calls        int
	lastRequest  *provider.GenerateRequest
}

func (m *mockProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	m.calls++
	m.lastRequest = req
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockProvider) GetModel() string          { return "test-model" }
func (m *mockProvider) SetModel(model string) error { return nil }

// mockIO implements UserIO with a scripted input queue
type mockIO struct {
	inputs   []string
	messages []string
	statuses []string
}

func (m *mockIO) ReadInput(prompt string) (string, error) {
	if len(m.inputs) == 0 {
		return "", io.EOF
	}
	next := m.inputs[0]
	m.inputs = m.inputs[1:]
	return next, nil
}

func (m *mockIO) WriteAssistant(text string) {
	m.messages = append(m.messages, text)
}

func (m *mockIO) WriteStatus(message string) {
	m.statuses = append(m.statuses, message)
}

func textResponse(text string) *provider.GenerateResponse {
	return &provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type: provider.ResponseTypeText,
			Text: text,
		},
	}
}

func toolCallResponse(calls ...chat.ToolCall) *provider.GenerateResponse {
	return &provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type:      provider.ResponseTypeToolCall,
			ToolCalls: calls,
		},
	}
}

func newTestLoop(p provider.Provider, reg *tool.Registry, userIO UserIO) *Loop {
	return New(config.DefaultConfig(), p, reg, userIO)
}

func TestRun_AlternatingHistory(t *testing.T) {
	p := &mockProvider{
		generateFunc: func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
			return textResponse("reply"), nil
		},
	}
	userIO := &mockIO{inputs: []string{"one", "two", "three", "exit"}}

	loop := newTestLoop(p, tool.NewRegistry(), userIO)
	require.NoError(t, loop.Run(context.Background()))

	// 1 system + N user + N assistant for N tool-free turns
	history := loop.History()
	require.Len(t, history, 1+2*3)
	assert.Equal(t, chat.RoleSystem, history[0].Role)
	for i := 1; i < len(history); i += 2 {
		assert.Equal(t, chat.RoleUser, history[i].Role)
		assert.Equal(t, chat.RoleAssistant, history[i+1].Role)
	}
}

func TestRun_ExitTokenSkipsCompletion(t *testing.T) {
	tests := []string{"exit", "EXIT", "Exit"}

	for _, token := range tests {
		t.Run(token, func(t *testing.T) {
			p := &mockProvider{}
			userIO := &mockIO{inputs: []string{token}}

			loop := newTestLoop(p, tool.NewRegistry(), userIO)
			require.NoError(t, loop.Run(context.Background()))

			assert.Zero(t, p.calls, "exit must not trigger a completion call")
			assert.Len(t, loop.History(), 1)
		})
	}
}

func TestRun_EOFEndsLoop(t *testing.T) {
	p := &mockProvider{}
	userIO := &mockIO{}

	loop := newTestLoop(p, tool.NewRegistry(), userIO)
	require.NoError(t, loop.Run(context.Background()))
	assert.Zero(t, p.calls)
}

func TestRun_BlankInputIgnored(t *testing.T) {
	p := &mockProvider{
		generateFunc: func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
			return textResponse("reply"), nil
		},
	}
	userIO := &mockIO{inputs: []string{"", "", "exit"}}

	loop := newTestLoop(p, tool.NewRegistry(), userIO)
	require.NoError(t, loop.Run(context.Background()))

	assert.Zero(t, p.calls)
	assert.Len(t, loop.History(), 1)
}

func TestRun_DisplaysAssistantReply(t *testing.T) {
	p := &mockProvider{
		generateFunc: func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
			return textResponse("pong"), nil
		},
	}
	userIO := &mockIO{inputs: []string{"ping", "exit"}}

	loop := newTestLoop(p, tool.NewRegistry(), userIO)
	require.NoError(t, loop.Run(context.Background()))

	require.Len(t, userIO.messages, 1)
	assert.Contains(t, userIO.messages[0], "pong")

	var assistants int
	for _, msg := range loop.History() {
		if msg.Role == chat.RoleAssistant {
			assistants++
		}
	}
	assert.Equal(t, 1, assistants)
}

func TestRun_SendsFullHistoryEachCall(t *testing.T) {
	p := &mockProvider{
		generateFunc: func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
			return textResponse("reply"), nil
		},
	}
	userIO := &mockIO{inputs: []string{"first", "second", "exit"}}

	loop := newTestLoop(p, tool.NewRegistry(), userIO)
	require.NoError(t, loop.Run(context.Background()))

	// Last call sees system + first + reply + second
	require.NotNil(t, p.lastRequest)
	require.Len(t, p.lastRequest.History, 4)
	assert.Equal(t, "second", p.lastRequest.History[3].Content)
}

func TestRun_ToolDispatch(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Register(tool.NewWeatherTool())

	p := &mockProvider{}
	p.generateFunc = func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
		if p.calls == 1 {
			return toolCallResponse(chat.ToolCall{
				ID:        "call_1",
				Name:      "get_weather",
				Arguments: `{"location":"Oslo"}`,
			}), nil
		}
		return textResponse("It is overcast in Oslo."), nil
	}
	userIO := &mockIO{inputs: []string{"weather in oslo?", "exit"}}

	loop := newTestLoop(p, reg, userIO)
	require.NoError(t, loop.Run(context.Background()))

	assert.Equal(t, 2, p.calls)

	// system, user, assistant(tool calls), tool result, assistant(text)
	history := loop.History()
	require.Len(t, history, 5)
	assert.Equal(t, chat.RoleAssistant, history[2].Role)
	require.Len(t, history[2].ToolCalls, 1)

	// Tool result lands immediately after the triggering assistant
	// message, before anything else.
	assert.Equal(t, chat.RoleTool, history[3].Role)
	assert.Equal(t, "call_1", history[3].ToolCallID)
	assert.Contains(t, history[3].Content, "overcast")

	assert.Equal(t, chat.RoleAssistant, history[4].Role)
	assert.Equal(t, "It is overcast in Oslo.", history[4].Content)
}

func TestRun_AdvertisesRegisteredTools(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Register(tool.NewWeatherTool())

	p := &mockProvider{
		generateFunc: func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
			return textResponse("reply"), nil
		},
	}
	userIO := &mockIO{inputs: []string{"hi", "exit"}}

	loop := newTestLoop(p, reg, userIO)
	require.NoError(t, loop.Run(context.Background()))

	require.NotNil(t, p.lastRequest)
	require.Len(t, p.lastRequest.Tools, 1)
	assert.Equal(t, "get_weather", p.lastRequest.Tools[0].Name)
}

func TestRun_UnknownToolIsFatal(t *testing.T) {
	p := &mockProvider{
		generateFunc: func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
			return toolCallResponse(chat.ToolCall{
				ID:        "call_1",
				Name:      "nonexistent-tool",
				Arguments: "{}",
			}), nil
		},
	}
	userIO := &mockIO{inputs: []string{"go"}}

	loop := newTestLoop(p, tool.NewRegistry(), userIO)
	err := loop.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrUnknownTool)
}

func TestRun_ToolExecutionFailureIsFatal(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Register(tool.NewWeatherTool())

	p := &mockProvider{
		generateFunc: func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
			return toolCallResponse(chat.ToolCall{
				ID:        "call_1",
				Name:      "get_weather",
				Arguments: `{"location":"Atlantis"}`,
			}), nil
		},
	}
	userIO := &mockIO{inputs: []string{"go"}}

	loop := newTestLoop(p, reg, userIO)
	err := loop.Run(context.Background())

	require.Error(t, err)
	var execErr *tool.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "get_weather", execErr.Tool)
}

func TestRun_ProviderFailureLeavesStoreIntact(t *testing.T) {
	p := &mockProvider{
		generateFunc: func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
			return nil, &provider.Error{
				Code:    provider.ErrorCodeUnavailable,
				Message: "service unavailable",
			}
		},
	}
	userIO := &mockIO{inputs: []string{"hello"}}

	loop := newTestLoop(p, tool.NewRegistry(), userIO)
	err := loop.Run(context.Background())

	require.Error(t, err)
	assert.True(t, provider.IsCode(err, provider.ErrorCodeUnavailable))

	// No partial append of the failed response: only the system
	// message and the user turn that triggered the call remain.
	history := loop.History()
	require.Len(t, history, 2)
	assert.Equal(t, chat.RoleSystem, history[0].Role)
	assert.Equal(t, chat.RoleUser, history[1].Role)
	assert.Equal(t, "hello", history[1].Content)
}

func TestRun_ToolIterationBound(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Register(tool.NewWeatherTool())

	p := &mockProvider{
		generateFunc: func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
			// The model keeps asking for tools forever.
			return toolCallResponse(chat.ToolCall{
				ID:        fmt.Sprintf("call_%d", len(req.History)),
				Name:      "get_weather",
				Arguments: `{"location":"Oslo"}`,
			}), nil
		},
	}
	userIO := &mockIO{inputs: []string{"loop forever"}}

	cfg := config.DefaultConfig()
	cfg.Conversation.MaxToolIterations = 3

	loop := New(cfg, p, reg, userIO)
	err := loop.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeded 3 iterations")
	assert.Equal(t, 3, p.calls)
}

func TestRun_GenerateRunsUnderDeadline(t *testing.T) {
	var hadDeadline bool
	p := &mockProvider{
		generateFunc: func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
			_, hadDeadline = ctx.Deadline()
			return textResponse("reply"), nil
		},
	}
	userIO := &mockIO{inputs: []string{"hi", "exit"}}

	loop := newTestLoop(p, tool.NewRegistry(), userIO)
	require.NoError(t, loop.Run(context.Background()))
	assert.True(t, hadDeadline, "completion calls must carry a deadline")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &mockProvider{}
	loop := newTestLoop(p, tool.NewRegistry(), &mockIO{inputs: []string{"hi"}})

	err := loop.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, p.calls)
}
