package speech

import (
	"context"
	"time"

	speechmodel "github.com/plantpal/backend/internal/model/speech"
)

// Service is the speech-synthesis entry point the turn pipeline consumes.
type Service struct {
	config    *speechmodel.Config
	ttsClient *VolcengineTTSClient
}

// NewService creates the speech service.
func NewService(config *speechmodel.Config) *Service {
	return &Service{
		config:    config,
		ttsClient: NewVolcengineTTSClient(config),
	}
}

// SynthesizeSpeech renders text to audio, bounded by the configured timeout
// so a stuck provider call fails the synthesis instead of hanging a worker.
func (s *Service) SynthesizeSpeech(ctx context.Context, req *speechmodel.TTSRequest) (*speechmodel.TTSResponse, error) {
	timeout := time.Duration(s.config.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.ttsClient.SynthesizeSpeechWS(callCtx, req)
}

// SynthesizeToBuffer is a convenience wrapper building the request inline.
func (s *Service) SynthesizeToBuffer(ctx context.Context, sessionID, text, voice, language string) (*speechmodel.TTSResponse, error) {
	return s.SynthesizeSpeech(ctx, &speechmodel.TTSRequest{
		SessionID: sessionID,
		Text:      text,
		Voice:     voice,
		Language:  language,
	})
}
