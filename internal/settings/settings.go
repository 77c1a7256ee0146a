// Package settings defines the host-provided configuration collaborator
// and a default environment-variable-backed implementation grounded on the
// ambient config helper package.
package settings

import (
	"time"

	"github.com/skylarkvoice/client/shared/config"
)

// Settings is implemented by whatever configuration source the host app
// uses (device preferences, a remote config service, plain env vars for a
// CLI harness).
type Settings interface {
	ClientVersion() string
	PreferredLanguage() string
	Device() string
	ToolTimeout() time.Duration
	EditFollowUpTimeout() time.Duration
	SilenceThreshold() time.Duration
	EndOfConversationSilence() time.Duration
	WatchdogTick() time.Duration
	TranscriptionHold() time.Duration
	FinalGracePeriod() time.Duration
}

// Env is the default Settings implementation: every value is read from an
// environment variable with a spec-mandated default.
type Env struct{}

func (Env) ClientVersion() string      { return config.GetEnv("VOICE_CLIENT_VERSION", "dev") }
func (Env) PreferredLanguage() string  { return config.GetEnv("VOICE_CLIENT_LANGUAGE", "en") }
func (Env) Device() string             { return config.GetEnv("VOICE_CLIENT_DEVICE", "unknown") }

func (Env) ToolTimeout() time.Duration {
	return config.GetEnvDuration("VOICE_CLIENT_TOOL_TIMEOUT", 30*time.Second)
}

func (Env) EditFollowUpTimeout() time.Duration {
	return config.GetEnvDuration("VOICE_CLIENT_EDIT_FOLLOWUP_TIMEOUT", 5*time.Second)
}

func (Env) SilenceThreshold() time.Duration {
	return config.GetEnvDuration("VOICE_CLIENT_SILENCE_THRESHOLD", 1500*time.Millisecond)
}

func (Env) EndOfConversationSilence() time.Duration {
	return config.GetEnvDuration("VOICE_CLIENT_EOC_SILENCE", 3000*time.Millisecond)
}

func (Env) WatchdogTick() time.Duration {
	return config.GetEnvDuration("VOICE_CLIENT_WATCHDOG_TICK", 200*time.Millisecond)
}

func (Env) TranscriptionHold() time.Duration {
	return config.GetEnvDuration("VOICE_CLIENT_TRANSCRIPTION_HOLD", 1000*time.Millisecond)
}

func (Env) FinalGracePeriod() time.Duration {
	return config.GetEnvDuration("VOICE_CLIENT_FINAL_GRACE", 500*time.Millisecond)
}
