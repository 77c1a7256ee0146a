// Command voiceclient is a minimal host harness for the voice session
// client: it wires the default WebSocket MediaLink, environment-backed
// Settings and an in-memory ConversationStore into a VoiceController and
// prints every session event to the log until interrupted.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/skylarkvoice/client/internal/convstore"
	"github.com/skylarkvoice/client/internal/logging"
	"github.com/skylarkvoice/client/internal/medialink"
	"github.com/skylarkvoice/client/internal/metrics"
	"github.com/skylarkvoice/client/internal/session"
	"github.com/skylarkvoice/client/internal/settings"
	"github.com/skylarkvoice/client/shared/config"
	"github.com/skylarkvoice/client/shared/jsonutil"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var serverURL, token string

	cmd := &cobra.Command{
		Use:   "voiceclient",
		Short: "Connect to a voice assistant server and stream session events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), serverURL, token)
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", config.GetEnv("VOICE_CLIENT_SERVER_URL", "ws://localhost:8080/ws"), "voice server websocket URL")
	cmd.Flags().StringVar(&token, "token", config.GetEnv("VOICE_CLIENT_TOKEN", ""), "bearer token for the connection")

	return cmd
}

func run(ctx context.Context, serverURL, token string) error {
	result, err := logging.Init(logging.Config{
		ServiceName: "voiceclient",
		Environment: config.GetEnv("ENVIRONMENT", "development"),
	})
	var logger *slog.Logger
	if err != nil {
		logger = slog.New(logging.NewPrettyHandler())
		logger.Warn("logging: tracer init failed, continuing with stderr-only logger", "error", err)
	} else {
		logger = result.Logger
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = result.Shutdown(shutdownCtx)
		}()
	}
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	link := medialink.NewWebSocket(medialink.WebSocketConfig{
		URL:     serverURL,
		Token:   token,
		Logger:  logger,
		Metrics: m,
	})

	ctrl := session.New(session.Config{
		Link:     link,
		Settings: settings.Env{},
		Metrics:  m,
		Logger:   logger,
		Store:    convstore.NewInMemory(),
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	ctrl.Start(runCtx)

	go logEvents(logger, ctrl.Events())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	logger.Info("voiceclient running", "server", serverURL)
	select {
	case <-sigCh:
		logger.Info("shutting down")
	case <-runCtx.Done():
	}

	ctrl.Stop()
	return nil
}

func logEvents(logger *slog.Logger, events <-chan session.Event) {
	for ev := range events {
		switch ev.Kind {
		case session.EventStateChanged:
			logger.Info("state changed", "state", ev.State.String())
		case session.EventAssistantSentence:
			logger.Info("assistant sentence", "conversation_id", ev.ConversationID, "text", ev.AssistantSentence.Text)
		case session.EventTranscription:
			logger.Info("transcription", "conversation_id", ev.ConversationID, "text", ev.Transcription.Text, "final", ev.Transcription.Final)
		case session.EventToolUseRequest:
			params := make(map[string]any, len(ev.ToolUseRequest.Parameters))
			for k, v := range ev.ToolUseRequest.Parameters {
				params[k] = v.Any()
			}
			logger.Info("tool use request", "conversation_id", ev.ConversationID, "tool", ev.ToolUseRequest.ToolName,
				"parameters", jsonutil.MustJSON(params))
		case session.EventReasoningStep:
			logger.Info("reasoning step", "conversation_id", ev.ConversationID, "content", ev.ReasoningStep.Content)
		case session.EventMemoryTrace:
			logger.Info("memory trace", "conversation_id", ev.ConversationID, "memory_id", ev.MemoryTrace.MemoryID)
		case session.EventCommentary:
			logger.Info("commentary", "conversation_id", ev.ConversationID, "content", ev.Commentary.Content)
		case session.EventServerInfo:
			logger.Info("server info", "model", ev.ServerInfo.Model.Name, "provider", ev.ServerInfo.Model.Provider)
		case session.EventSessionStats:
			logger.Info("session stats", "messages", ev.SessionStats.MessageCount, "tool_calls", ev.SessionStats.ToolCallCount)
		case session.EventSubscriptionRejected:
			logger.Warn("subscription rejected", "conversation_id", ev.ConversationID, "error", ev.Err)
		case session.EventSyncCompleted:
			logger.Info("sync completed", "conversation_id", ev.ConversationID, "messages", len(ev.SyncResponse.Messages), "last_sequence", ev.SyncResponse.LastSequence)
		case session.EventError:
			logger.Error("session error", "conversation_id", ev.ConversationID, "error", ev.Err)
		default:
			logger.Debug("unhandled session event", "kind", fmt.Sprintf("%d", ev.Kind))
		}
	}
}
