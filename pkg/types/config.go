package types

import "time"

// GenerationBackend selects the protocol used to reach the local model.
type GenerationBackend string

const (
	// BackendOllama posts to Ollama's native /api/generate endpoint.
	BackendOllama GenerationBackend = "ollama"
	// BackendOpenAI uses an OpenAI-compatible chat completion endpoint
	// (Ollama serves one under /v1).
	BackendOpenAI GenerationBackend = "openai"
)

// GenerationConfig holds settings for the generation client.
type GenerationConfig struct {
	// Backend is "ollama" (default) or "openai".
	Backend GenerationBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Endpoint is the full URL of the native generate endpoint
	// (e.g. "http://localhost:11434/api/generate").
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// BaseURL is the OpenAI-compatible API root (e.g. "http://localhost:11434/v1").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Model is the model identifier already pulled into the service (e.g. "llama3").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is sent by the openai backend. Local servers ignore it.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Timeout bounds the generation call. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// RenderConfig holds settings for PDF output.
type RenderConfig struct {
	// FontPath is the TrueType font used for body text. Required.
	FontPath string `json:"font_path" yaml:"font_path" mapstructure:"font_path"`

	// BoldFontPath is the TrueType font used for headings. Optional; the
	// regular face is used when the file does not exist.
	BoldFontPath string `json:"bold_font_path" yaml:"bold_font_path" mapstructure:"bold_font_path"`

	// FontSize is the paragraph font size in points (default 12).
	FontSize float64 `json:"font_size" yaml:"font_size" mapstructure:"font_size"`

	// Spacing is the vertical space in points after every paragraph (default 12).
	Spacing float64 `json:"spacing" yaml:"spacing" mapstructure:"spacing"`

	// PageSize is an fpdf page size name such as "Letter" or "A4".
	PageSize string `json:"page_size" yaml:"page_size" mapstructure:"page_size"`
}

// OutputConfig controls where the proposal PDF is written.
type OutputConfig struct {
	// Dir is the directory for the output PDF (default ".").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// Config groups all settings for a run.
type Config struct {
	Generation GenerationConfig `json:"generation" yaml:"generation" mapstructure:"generation"`
	Render     RenderConfig     `json:"render" yaml:"render" mapstructure:"render"`
	Output     OutputConfig     `json:"output" yaml:"output" mapstructure:"output"`
}

// DefaultConfig returns the settings used when no config file, environment
// variable or flag overrides them.
func DefaultConfig() Config {
	return Config{
		Generation: GenerationConfig{
			Backend:  BackendOllama,
			Endpoint: "http://localhost:11434/api/generate",
			BaseURL:  "http://localhost:11434/v1",
			Model:    "llama3",
		},
		Render: RenderConfig{
			FontPath:     "DejaVuSans.ttf",
			BoldFontPath: "DejaVuSans-Bold.ttf",
			FontSize:     12,
			Spacing:      12,
			PageSize:     "Letter",
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}
