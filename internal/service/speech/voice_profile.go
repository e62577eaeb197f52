package speech

import "strings"

// Product-facing voice aliases mapped to Volcengine speaker identifiers.
// The plant persona ships with a small neutral Korean set.
var voiceAliases = map[string]string{
	"neutral": "multi_female_sophie_conversation_wvae_bigtts",
	"warm":    "multi_female_sophie_conversation_wvae_bigtts",
	"bright":  "multi_male_jingqiangkanye_moon_bigtts",
	"calm":    "multi_male_jingqiangkanye_moon_bigtts",
}

// NormalizeVoiceAlias maps a friendly alias to its speaker id. Unknown
// values pass through unchanged so raw speaker ids keep working.
func NormalizeVoiceAlias(voice string) string {
	voice = strings.TrimSpace(voice)
	if voice == "" {
		return ""
	}
	if speaker, ok := voiceAliases[strings.ToLower(voice)]; ok {
		return speaker
	}
	return voice
}
