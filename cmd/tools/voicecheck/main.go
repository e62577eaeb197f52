package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/plantpal/backend/internal/config"
	speechmodel "github.com/plantpal/backend/internal/model/speech"
	"github.com/plantpal/backend/internal/service/speech"
)

// Manual smoke tool for the TTS provider: synthesizes one line and writes
// the audio to disk, bypassing the HTTP surface.
func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] failed to load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if !cfg.Speech.Enabled {
		log.Fatal("speech service not configured: set SPEECH_APP_ID and SPEECH_ACCESS_TOKEN")
	}

	text := flag.String("text", "물 줘서 고마워요! 오늘은 기분이 아주 좋아요.", "text to synthesize")
	outputPath := flag.String("out", "", "output audio path (default voicecheck.<format>)")
	voice := flag.String("voice", "", "voice id or alias, defaults to SPEECH_TTS_VOICE")
	language := flag.String("lang", "", "language code, defaults to SPEECH_TTS_LANGUAGE")
	timeout := flag.Duration("timeout", 45*time.Second, "request timeout")
	flag.Parse()

	speechCfg := &speechmodel.Config{
		AppID:       cfg.Speech.AppID,
		AccessToken: cfg.Speech.AccessToken,
		APIKey:      cfg.Speech.APIKey,
		TTSVoice:    cfg.Speech.TTSVoice,
		TTSSpeed:    cfg.Speech.TTSSpeed,
		TTSVolume:   cfg.Speech.TTSVolume,
		TTSLanguage: cfg.Speech.TTSLanguage,
		Timeout:     cfg.Speech.Timeout,
	}

	svc := speech.NewService(speechCfg)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sessionID := fmt.Sprintf("voicecheck-%d", time.Now().UnixNano())
	resp, err := svc.SynthesizeToBuffer(ctx, sessionID, *text, *voice, *language)
	if err != nil {
		log.Fatalf("synthesis failed: %v", err)
	}

	path := *outputPath
	if path == "" {
		path = "voicecheck." + resp.Format
	}

	if err := os.WriteFile(path, resp.AudioData, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", path, err)
	}

	log.Printf("wrote %d bytes to %s (duration=%dms, reqid=%s)", len(resp.AudioData), path, resp.Duration, resp.RequestID)
}
