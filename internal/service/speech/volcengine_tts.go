package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	speechmodel "github.com/plantpal/backend/internal/model/speech"
)

const ttsEndpoint = "wss://openspeech.bytedance.com/api/v3/tts/unidirectional/stream"

// VolcengineTTSClient speaks the Volcengine TTS WebSocket protocol.
type VolcengineTTSClient struct {
	config *speechmodel.Config
	dialer *websocket.Dialer
}

// NewVolcengineTTSClient creates a TTS client for the given credentials.
func NewVolcengineTTSClient(config *speechmodel.Config) *VolcengineTTSClient {
	return &VolcengineTTSClient{
		config: config,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 30 * time.Second,
		},
	}
}

type ttsServerMessage struct {
	ReqID    string `json:"reqid"`
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Sequence int    `json:"sequence"`
	Data     string `json:"data"`
	Addition struct {
		Duration string `json:"duration,omitempty"`
	} `json:"addition,omitempty"`
}

type ttsRequest struct {
	User struct {
		UID string `json:"uid"`
	} `json:"user"`
	ReqParams struct {
		Speaker     string         `json:"speaker"`
		Text        string         `json:"text"`
		AudioParams ttsAudioParams `json:"audio_params"`
		Language    string         `json:"language,omitempty"`
	} `json:"req_params"`
}

type ttsAudioParams struct {
	Format      string  `json:"format"`
	SampleRate  int     `json:"sample_rate"`
	SpeedRatio  float32 `json:"speed_ratio,omitempty"`
	VolumeRatio float32 `json:"volume_ratio,omitempty"`
}

// SynthesizeSpeechWS renders one utterance to audio over the WebSocket
// stream, buffering chunks until the server marks the session finished.
func (c *VolcengineTTSClient) SynthesizeSpeechWS(ctx context.Context, req *speechmodel.TTSRequest) (*speechmodel.TTSResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("TTS text is empty")
	}

	appKey, accessKey, err := resolveCredentials(c.config)
	if err != nil {
		return nil, err
	}

	encoding := strings.TrimSpace(req.Format)
	if encoding == "" || encoding == "wav" {
		encoding = "mp3"
	}

	connectID := uuid.NewString()

	header := http.Header{}
	header.Set("X-Api-App-Key", appKey)
	header.Set("X-Api-Access-Key", accessKey)
	header.Set("X-Api-Resource-Id", "volc.service_type.10029")
	header.Set("X-Api-Connect-Id", connectID)

	conn, resp, err := c.dialer.DialContext(ctx, ttsEndpoint, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to TTS WebSocket: %w", err)
	}
	defer conn.Close()

	if resp != nil {
		if logid := resp.Header.Get("X-Tt-Logid"); logid != "" {
			log.Printf("[tts] connected with logid: %s", logid)
		}
	}

	payload, userUID := c.buildRequestPayload(req, encoding)
	payloadData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TTS request: %w", err)
	}

	frame, err := EncodeMessage(CreateFullClientRequest(payloadData, NoCompression))
	if err != nil {
		return nil, fmt.Errorf("failed to encode TTS frame: %w", err)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return nil, fmt.Errorf("failed to send TTS request: %w", err)
	}

	responseSessionID := strings.TrimSpace(req.SessionID)
	if responseSessionID == "" {
		responseSessionID = userUID
	}

	var (
		audioBuffer bytes.Buffer
		reqID       string
		duration    int64
	)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("failed to read TTS response: %w", err)
		}

		msg, err := DecodeMessage(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode TTS message: %w", err)
		}

		switch msg.Header.MessageType {
		case ErrorMessage:
			body, err := DecompressPayload(msg.Payload, msg.Header.CompressionMethod)
			if err != nil {
				return nil, fmt.Errorf("TTS error message decode failed: %w", err)
			}
			return nil, fmt.Errorf("TTS error: %s", string(body))

		case AudioOnlyServerResponse:
			chunk, err := DecompressPayload(msg.Payload, msg.Header.CompressionMethod)
			if err != nil {
				return nil, fmt.Errorf("failed to decompress audio chunk: %w", err)
			}
			audioBuffer.Write(chunk)

		case FullServerResponse:
			body, err := DecompressPayload(msg.Payload, msg.Header.CompressionMethod)
			if err != nil {
				return nil, fmt.Errorf("failed to decompress TTS response payload: %w", err)
			}

			var serverResp ttsServerMessage
			if len(body) > 0 {
				if err := json.Unmarshal(body, &serverResp); err != nil {
					log.Printf("[tts] failed to unmarshal response payload: %v", err)
				} else {
					if serverResp.Code != 0 && serverResp.Code != 3000 {
						return nil, fmt.Errorf("TTS API error %d: %s", serverResp.Code, serverResp.Message)
					}
					if serverResp.ReqID != "" {
						reqID = serverResp.ReqID
					}
					if serverResp.Addition.Duration != "" {
						if parsed, err := strconv.ParseInt(serverResp.Addition.Duration, 10, 64); err == nil {
							duration = parsed
						}
					}
					if serverResp.Data != "" {
						chunk, err := base64.StdEncoding.DecodeString(serverResp.Data)
						if err != nil {
							return nil, fmt.Errorf("failed to decode base64 audio chunk: %w", err)
						}
						audioBuffer.Write(chunk)
					}
				}
			}

			finishedByEvent := msg.Header.MessageFlags == WithEvent && msg.EventType == EventTypeSessionFinished
			finishedBySequence := msg.IsLastPacket() || serverResp.Sequence < 0

			if finishedByEvent || finishedBySequence {
				if audioBuffer.Len() == 0 {
					return nil, fmt.Errorf("TTS audio is empty")
				}
				if reqID == "" {
					reqID = connectID
				}
				return &speechmodel.TTSResponse{
					SessionID: responseSessionID,
					AudioData: audioBuffer.Bytes(),
					Duration:  duration,
					Format:    encoding,
					RequestID: reqID,
					CreatedAt: time.Now(),
				}, nil
			}

		default:
			log.Printf("[tts] unexpected message type: %d", msg.Header.MessageType)
		}
	}
}

func (c *VolcengineTTSClient) buildRequestPayload(req *speechmodel.TTSRequest, encoding string) (*ttsRequest, string) {
	payload := &ttsRequest{}

	userUID := strings.TrimSpace(req.SessionID)
	if userUID == "" {
		userUID = uuid.NewString()
	}
	payload.User.UID = userUID

	speaker := NormalizeVoiceAlias(req.Voice)
	if speaker == "" {
		speaker = NormalizeVoiceAlias(c.config.TTSVoice)
	}
	payload.ReqParams.Speaker = speaker

	payload.ReqParams.Text = req.Text
	payload.ReqParams.AudioParams.Format = encoding
	payload.ReqParams.AudioParams.SampleRate = 24000

	speed := req.Speed
	if speed <= 0 {
		speed = c.config.TTSSpeed
	}
	if speed > 0 && speed != 1.0 {
		payload.ReqParams.AudioParams.SpeedRatio = speed
	}

	volume := req.Volume
	if volume <= 0 {
		volume = c.config.TTSVolume
	}
	if volume > 0 && volume != 1.0 {
		payload.ReqParams.AudioParams.VolumeRatio = volume
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = strings.TrimSpace(c.config.TTSLanguage)
	}
	if language != "" {
		payload.ReqParams.Language = language
	}

	return payload, userUID
}
