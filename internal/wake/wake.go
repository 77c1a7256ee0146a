// Package wake defines the wake-word detection collaborator. The session
// treats wake word detection as opaque: some host-provided component (an
// on-device model, a push-to-talk button, a platform wake service) decides
// when the user wants to talk, and signals it here.
package wake

// Source is implemented by whatever wake-word/activation mechanism the host
// app wires in. The session subscribes to Detections to transition out of
// ListeningForWakeWord.
type Source interface {
	// Start begins listening for activation events. Detections become
	// available on the channel returned by Detections.
	Start() error

	// Stop halts listening. Safe to call when already stopped.
	Stop()

	// Detections carries one value each time the wake source fires.
	Detections() <-chan Detection
}

// Detection describes one activation event.
type Detection struct {
	Confidence float32
	Phrase     string
}
