package speech

// Config holds Volcengine speech-synthesis settings.
type Config struct {
	AppID       string `json:"appId"`
	AccessToken string `json:"accessToken"`
	APIKey      string `json:"apiKey,omitempty"` // legacy alias for AccessToken

	TTSVoice    string  `json:"ttsVoice"`
	TTSSpeed    float32 `json:"ttsSpeed"`
	TTSVolume   float32 `json:"ttsVolume"`
	TTSLanguage string  `json:"ttsLanguage"`

	Timeout int `json:"timeout"` // seconds, bounds each synthesis call
}
