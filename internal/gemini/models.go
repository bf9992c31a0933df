package gemini

import "os"

// Gemini model IDs used by the pipeline.
//
// | Model Name             | API Model ID               | Use Case                    |
// |------------------------|----------------------------|-----------------------------|
// | Gemini 2.5 Flash       | gemini-2.5-flash           | Analysis, structured text   |
// | Gemini 3 Pro Image     | gemini-3-pro-image-preview | High-fidelity mockup render |
// | Gemini 2.5 Flash Image | gemini-2.5-flash-image     | Fallback mockup render      |
const (
	// ModelFlash handles vision analysis and structured text generation.
	ModelFlash = "gemini-2.5-flash"

	// ModelProImage is the high-fidelity image generation tier.
	ModelProImage = "gemini-3-pro-image-preview"

	// ModelFlashImage is the lower image generation tier, attempted after
	// the pro tier is exhausted.
	ModelFlashImage = "gemini-2.5-flash-image"
)

// TextModelName resolves the text/analysis model, honoring a GEMINI_MODEL
// environment override.
func TextModelName() string {
	if env := os.Getenv("GEMINI_MODEL"); env != "" {
		return env
	}
	return ModelFlash
}
