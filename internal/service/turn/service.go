package turn

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/plantpal/backend/internal/model/conversation"
	"github.com/plantpal/backend/internal/model/plant"
	speechmodel "github.com/plantpal/backend/internal/model/speech"
	"github.com/plantpal/backend/internal/observability"
	"github.com/plantpal/backend/internal/service/ai"
	convservice "github.com/plantpal/backend/internal/service/conversation"
)

var (
	// ErrValidation marks a missing or empty required field.
	ErrValidation = errors.New("validation failed")
	// ErrNotConfigured marks a turn for an identity without a profile. This
	// is an expected user-facing condition, not a fault.
	ErrNotConfigured = errors.New("no configuration for this identity")
	// ErrUpstream marks a chat-model failure; the transcript is untouched.
	ErrUpstream = errors.New("upstream capability failed")
)

// ReplyGenerator produces the next assistant message for a transcript.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, transcript []conversation.Message, userMessage string) (string, error)
}

// Synthesizer renders text to audio.
type Synthesizer interface {
	SynthesizeSpeech(ctx context.Context, req *speechmodel.TTSRequest) (*speechmodel.TTSResponse, error)
}

// Result is one completed turn.
type Result struct {
	Reply         string
	Audio         []byte
	AudioFormat   string
	TranscriptLen int
}

// Service orchestrates a conversation turn: validate, resolve the profile,
// replay the transcript to the chat model, persist the exchange, then voice
// the reply.
type Service struct {
	profiles plant.Store
	convs    *convservice.Service
	replies  ReplyGenerator
	synth    Synthesizer // nil when speech is not configured
	metrics  *observability.Metrics
}

// NewService wires the turn pipeline.
func NewService(profiles plant.Store, convs *convservice.Service, replies ReplyGenerator, synth Synthesizer, metrics *observability.Metrics) *Service {
	return &Service{
		profiles: profiles,
		convs:    convs,
		replies:  replies,
		synth:    synth,
		metrics:  metrics,
	}
}

// HandleTurn runs one caretaker utterance through the pipeline. A chat-model
// failure aborts the turn without mutating the transcript; a synthesis
// failure degrades to a text-only result.
func (s *Service) HandleTurn(ctx context.Context, ownerID, deviceID, userInput string, reading plant.SensorReading) (*Result, error) {
	started := time.Now()

	if err := validateTurnInput(ownerID, deviceID, userInput); err != nil {
		return nil, err
	}

	profile, ok := s.profiles.Get(ownerID, deviceID)
	if !ok {
		return nil, ErrNotConfigured
	}
	key := profile.Key()

	transcript := s.convs.Snapshot(key, ai.BuildSystemPrompt(profile))
	userMessage := ai.ComposeUserTurn(userInput, reading)

	reply, err := s.replies.GenerateReply(ctx, transcript, userMessage)
	if err != nil {
		s.metrics.ProviderError("chat_model")
		s.metrics.ObserveTurn("model_error", time.Since(started))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	length, err := s.convs.AppendExchange(key, userMessage, reply)
	if err != nil {
		// The session was created by Snapshot above, so this indicates a bug
		// rather than a recoverable condition.
		return nil, fmt.Errorf("failed to persist exchange: %w", err)
	}

	result := &Result{Reply: reply, TranscriptLen: length}

	if s.synth != nil {
		resp, err := s.synth.SynthesizeSpeech(ctx, &speechmodel.TTSRequest{
			SessionID: key.String(),
			Text:      reply,
		})
		if err != nil {
			// Text-only degradation: the reply already exists, so the turn
			// succeeds with a null audio channel.
			log.Printf("[turn] TTS failed for %s, returning text only: %v", key, err)
			s.metrics.ProviderError("speech")
		} else {
			result.Audio = resp.AudioData
			result.AudioFormat = resp.Format
		}
	}

	s.metrics.ObserveTurn("success", time.Since(started))
	log.Printf("[turn] completed for %s, transcript=%d audio=%d bytes", key, length, len(result.Audio))
	return result, nil
}

func validateTurnInput(ownerID, deviceID, userInput string) error {
	switch {
	case strings.TrimSpace(ownerID) == "":
		return fmt.Errorf("%w: owner_id is required", ErrValidation)
	case strings.TrimSpace(deviceID) == "":
		return fmt.Errorf("%w: device_id is required", ErrValidation)
	case strings.TrimSpace(userInput) == "":
		return fmt.Errorf("%w: user_input is required", ErrValidation)
	}
	return nil
}
