package speech

// TTSRequest asks for one utterance to be rendered as audio.
type TTSRequest struct {
	SessionID string  `json:"sessionId"`
	Text      string  `json:"text"`
	Voice     string  `json:"voice"`    // speaker id or alias
	Speed     float32 `json:"speed"`    // playback rate 0.5-2.0
	Volume    float32 `json:"volume"`   // 0.0-1.0
	Format    string  `json:"format"`   // mp3, etc.
	Language  string  `json:"language"` // ko, en, zh
}
