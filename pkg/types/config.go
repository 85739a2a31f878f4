// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SegmentationConfig holds the geometric thresholds of the layout
// segmentation engine. The zero value is not useful; use
// DefaultSegmentationConfig. All distances are in page points.
//
// The defaults reproduce the tuned production behavior; they are hoisted
// into a config struct so property tests can vary them, not because the
// pipeline reads them from a file.
type SegmentationConfig struct {
	// MergeDistance is the proximity threshold for the initial
	// drawing/image clustering pass.
	MergeDistance float64 `json:"merge_distance" yaml:"merge_distance"`

	// HorizontalMergeDistance is the vertical reach of the
	// edge-aligned horizontal-line merge during the initial pass.
	HorizontalMergeDistance float64 `json:"horizontal_merge_distance" yaml:"horizontal_merge_distance"`

	// FinalMergeDistance is the proximity threshold for the cleanup
	// merge after text adsorption.
	FinalMergeDistance float64 `json:"final_merge_distance" yaml:"final_merge_distance"`

	// LargeTextDistance is the adsorption threshold for dense text
	// blocks. Near-zero: only text that touches a region is captured.
	LargeTextDistance float64 `json:"large_text_distance" yaml:"large_text_distance"`

	// SmallTextDistance is the adsorption threshold for labels and
	// captions, which are typeset with a few points of margin.
	SmallTextDistance float64 `json:"small_text_distance" yaml:"small_text_distance"`

	// MinRegionSide is the minimum width and height of an output
	// region; anything smaller is noise, not a crop target.
	MinRegionSide float64 `json:"min_region_side" yaml:"min_region_side"`

	// ShortLineMaxWidth drops horizontal-line drawings narrower than
	// this before segmentation; they are rendering artifacts, not
	// dividers.
	ShortLineMaxWidth float64 `json:"short_line_max_width" yaml:"short_line_max_width"`

	// LargeTextAvgLineLen is the average characters-per-line above
	// which a text block counts as dense body text. A heuristic
	// carried from production tuning, not a law.
	LargeTextAvgLineLen float64 `json:"large_text_avg_line_len" yaml:"large_text_avg_line_len"`
}

// DefaultSegmentationConfig returns the production thresholds.
func DefaultSegmentationConfig() SegmentationConfig {
	return SegmentationConfig{
		MergeDistance:           10,
		HorizontalMergeDistance: 100,
		FinalMergeDistance:      10,
		LargeTextDistance:       0.1,
		SmallTextDistance:       5,
		MinRegionSide:           20,
		ShortLineMaxWidth:       30,
		LargeTextAvgLineLen:     5,
	}
}

// RenderConfig holds rasterization settings for page and region images.
type RenderConfig struct {
	// PageScale is the zoom factor for the annotated full-page render
	// (3 ≈ 216 DPI).
	PageScale float64 `json:"page_scale" yaml:"page_scale"`

	// RegionScale is the zoom factor for cropped region images
	// (4 ≈ 288 DPI).
	RegionScale float64 `json:"region_scale" yaml:"region_scale"`

	// OutputDir receives the rendered PNG files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// DefaultRenderConfig returns the render scales used in production.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{PageScale: 3, RegionScale: 4}
}

// AIConfig holds shared settings for calls to a vision language model.
type AIConfig struct {
	// Model is the model identifier (e.g. "gpt-4o").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL is the OpenAI-compatible API root
	// (e.g. "https://openrouter.ai/api/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxRetries is the number of retry attempts for failed API calls
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// TranscriptionConfig holds settings for the page transcription stage.
type TranscriptionConfig struct {
	AIConfig `yaml:",inline"`

	// Workers bounds the number of concurrent page transcriptions
	// (default 1).
	Workers int `json:"workers" yaml:"workers"`

	// Temperature, when non-nil, is passed to the model (0–2).
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`

	// MaxTokens, when non-nil, caps the response length.
	MaxTokens *int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`

	// PromptFile optionally points at a YAML file overriding the
	// built-in prompts (keys: prompt, rect_prompt, role_prompt).
	PromptFile string `json:"prompt_file,omitempty" yaml:"prompt_file,omitempty"`

	// OutputDir receives output.md alongside the rendered images.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Verbose echoes each page's transcription as it arrives.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// CacheConfig holds settings for the transcription cache.
type CacheConfig struct {
	// Dir is the directory holding the cache database (defaults to
	// the output directory).
	Dir string `json:"dir" yaml:"dir"`

	// Disabled turns the cache off entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Segmentation  SegmentationConfig  `json:"segmentation" yaml:"segmentation"`
	Render        RenderConfig        `json:"render" yaml:"render"`
	Transcription TranscriptionConfig `json:"transcription" yaml:"transcription"`
	Cache         CacheConfig         `json:"cache" yaml:"cache"`
}
