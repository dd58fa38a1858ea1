package entity

import "encoding/json"

// JobConfig is the provider-specific payload dispatched to the downstream
// execution API. It carries the original request fields, the routing
// fields, and a bag of provider-specific defaults/optimizations.
//
// Provider-specific fields (resolution, fps, style_strength,
// enable_camera_movements, target_image_count, ...) are heterogeneous
// across providers — exactly as in the original Python implementation,
// which builds this as a plain dict — so they live in Extra rather than as
// dozens of always-present struct fields.
type JobConfig struct {
	Topic           string       `json:"topic"`
	Prompt          string       `json:"prompt,omitempty"`
	Style           Style        `json:"style"`
	Theme           string       `json:"theme,omitempty"`
	Duration        int          `json:"duration,omitempty"`
	AspectRatio     AspectRatio  `json:"aspect_ratio,omitempty"`
	VoiceStyle      string       `json:"voice_style,omitempty"`
	BackgroundMusic string       `json:"background_music,omitempty"`
	ContentType     ContentType  `json:"content_type,omitempty"`

	Provider      Provider     `json:"provider"`
	Mode          Mode         `json:"mode"`
	RoutingReason string       `json:"routing_reason"`
	RequestID     string       `json:"request_id,omitempty"`
	Priority      Priority     `json:"priority,omitempty"`
	Adaptations   *Adaptations `json:"adaptations,omitempty"`

	Extra map[string]interface{} `json:"-"`
}

// Set stores a provider-specific field in Extra.
func (j *JobConfig) Set(key string, value interface{}) {
	if j.Extra == nil {
		j.Extra = make(map[string]interface{})
	}
	j.Extra[key] = value
}

// Get reads a provider-specific field from Extra.
func (j *JobConfig) Get(key string) (interface{}, bool) {
	if j.Extra == nil {
		return nil, false
	}
	v, ok := j.Extra[key]
	return v, ok
}

// MarshalJSON flattens Extra's provider-specific fields alongside the
// strongly-typed base fields into a single JSON object, mirroring the flat
// dict the original Python implementation sends downstream.
func (j JobConfig) MarshalJSON() ([]byte, error) {
	type base JobConfig
	baseBytes, err := json.Marshal(base(j))
	if err != nil {
		return nil, err
	}

	var flat map[string]interface{}
	if err := json.Unmarshal(baseBytes, &flat); err != nil {
		return nil, err
	}

	for k, v := range j.Extra {
		flat[k] = v
	}

	return json.Marshal(flat)
}
