// Package prompt translates a settings.Model into the natural-language
// generation instruction sent to the image model. Composition is a pure
// function: identical settings and variant always produce byte-identical
// output.
package prompt

import (
	"fmt"
	"strings"

	"github.com/w3jdev/mockupgenius/internal/settings"
)

// Variant distinguishes the two generation jobs produced for one source
// image when A/B testing is enabled.
type Variant string

const (
	VariantA Variant = "A"
	VariantB Variant = "B"
)

// Composition is the result of composing one generation request.
type Composition struct {
	// GenerationInstruction is the full instruction for the image model,
	// including the placement directive.
	GenerationInstruction string
	// PlacementDirective is the screen-placement portion on its own, for
	// callers that surface it separately.
	PlacementDirective string
}

// Compose builds the generation instruction for the given configuration.
// It never fails: unknown enum values fall through to generic clauses.
func Compose(s settings.Model, variant Variant) Composition {
	placement := placementDirective(s.ContentFit)

	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\n=== LAYER 1: SCREEN CONTENT (ULTRA-HIGH FIDELITY) ===\n")
	b.WriteString(screenLayerClause)
	b.WriteString("- ")
	b.WriteString(placement)
	b.WriteString("\n")

	b.WriteString("\n=== LAYER 2: PHOTO-REALISTIC ENVIRONMENT (PHYSICS SIMULATION) ===\n")
	b.WriteString("- " + deviceClause(s.DeviceType) + "\n")
	b.WriteString("- " + environmentClause(s) + "\n")
	b.WriteString("- " + lightingClause(s.Lighting) + "\n")
	b.WriteString("- " + angleClause(s.Angle) + "\n")
	b.WriteString(renderSpecClause)

	b.WriteString("\n=== COMPOSITE & FINISHING ===\n")
	b.WriteString(finishingClause)

	if variant == VariantB {
		b.WriteString("\n" + variantBClause + "\n")
	}

	b.WriteString("\n*** BRAND ALIGNMENT ***\n")
	tagline := s.MarketingTagline
	if tagline == "" {
		tagline = "Premium Quality"
	}
	fmt.Fprintf(&b, "- Tagline Vibe: %q\n", tagline)
	if len(s.DetectedColors) > 0 {
		fmt.Fprintf(&b, "- COLOR PALETTE: Integrate %s into background props or ambient light tint.\n",
			strings.Join(s.DetectedColors, ", "))
	}
	if s.Description != "" {
		fmt.Fprintf(&b, "- USER INSTRUCTION: %s\n", s.Description)
	}
	if s.CustomPrompt != "" {
		fmt.Fprintf(&b, "- %s\n", s.CustomPrompt)
	}
	b.WriteString("\nOutput: A photorealistic, 4K resolution marketing asset.\n")

	return Composition{
		GenerationInstruction: b.String(),
		PlacementDirective:    placement,
	}
}

const preamble = `ACT AS: A world-class product photographer (Phase One XF IQ4 150MP) and senior 3D render engine (Octane/Redshift).

TASK: Create an ultra-premium marketing mockup using dual-layer composite architecture.

*** CRITICAL ANTI-HALLUCINATION PROTOCOL ***
1. FRONT FACING ONLY: The device MUST be shown from the FRONT or 3/4 FRONT view. The SCREEN MUST BE VISIBLE to the camera.
2. NO BACK-OF-DEVICE: Do NOT render the back case of the device. Do NOT apply the screenshot as a texture on the back.
3. SCREEN IS A SCREEN: The input image IS THE DIGITAL DISPLAY content. It emits light. It is NOT a sticker.`

const screenLayerClause = `- INPUT PROCESSING: Treat the provided UI screenshot as a "Smart Object".
- INTERNAL RESOLUTION: Upscale UI input 300% before mapping to the device to ensure "Retina" crispness.
- TEXT PRESERVATION: Text MUST remain 100% legible and sharp. Do NOT hallucinate, blur, or "repaint" the UI text.
- SHARPENING: Apply "High-Pass" sharpening ONLY to the screen smart object layer.
- TRANSFORMATION: Apply perspective transform (bicubic interpolation) to fit the device screen perfectly.
`

const renderSpecClause = `- CAMERA: 85mm prime lens at f/2.8.
- DEPTH OF FIELD: progressive Gaussian blur (Screen=0%, Mid=30%, Background=90% with bokeh).
- RENDER ENGINE SPECS:
    * Global Illumination: ON
    * Raytracing: ON (path tracing)
    * Materials: Dielectric glass (IOR 1.5) for screen, anisotropic aluminum/titanium for body.
    * Caustics: Subtle reflective caustics from the bezel.
`

const finishingClause = `- SCREEN PHYSICS: Apply subtle 5% glass reflection and 12% screen glow OVER the UI layer, but ensure text stays readable.
- COLOR GRADING:
    * If Lifestyle: Cinematic teal/orange (warm highlights, cool shadows).
    * If Tech: Cool professional (crisp whites, deep blues).
- NO ARTIFACTS: No fuzzy edges on the UI. The result must be indistinguishable from a studio photo even at 200% zoom.
`

const variantBClause = `*** VARIANT B INSTRUCTION ***
- CHANGE ANGLE: If Variant A was a 3/4 view, make this slightly more top-down or a tighter close-up.
- CHANGE LIGHTING: Shift the key light position to create a different shadow pattern.
- ALTERNATE PROPS: Use slightly different background elements while keeping the same theme.`

// deviceClause resolves the device sub-instruction. Auto emits a conditional
// instruction so the model resolves the device from the screenshot itself.
func deviceClause(d settings.DeviceType) string {
	switch d {
	case settings.DeviceAuto:
		return "INTELLIGENT SELECTION: Analyze the screenshot aspect ratio. If portrait -> iPhone 15 Pro Max (Titanium). If landscape -> MacBook Pro 16 M3 (Space Black). If square -> iPad Pro. Render with physically correct materials (refraction, metal roughness)."
	case settings.DeviceSmartphone:
		return "iPhone 15 Pro Max, Natural Titanium finish. Ceramic Shield front. Ultra-thin uniform bezels. Micro-reflections on chamfered edges."
	case settings.DeviceMarketingHero:
		return "Futuristic 'Hero' device. Frameless glass slab aesthetic. Floating presentation. Glowing subtle edge accents."
	case settings.DeviceLaptop:
		return "MacBook Pro 16-inch M3 Max. Space Black anodized aluminum. Liquid Retina XDR display (deep blacks). Open 90 degrees."
	case settings.DeviceDesktop:
		return "Apple Studio Display 5K. Aluminum stand. Minimalist desk setup with Magic Keyboard and Trackpad."
	case settings.DeviceTablet:
		return "iPad Pro 12.9-inch. Thin aluminum chassis. Edge-to-edge Liquid Retina display. Apple Pencil 2 magnetically attached."
	case settings.DeviceSmartWatch:
		return "Apple Watch Ultra 2. Titanium case (49mm). Orange Alpine Loop. Sapphire crystal display."
	default:
		return fmt.Sprintf("Modern premium device (%s), front facing, photorealistic materials.", string(d))
	}
}

// Category keyword sets used by the environment clause when the style is
// Auto or Lifestyle. Matched against the analysis-inferred app category.
var (
	foodKeywords     = []string{"food", "restaurant", "drink"}
	financeKeywords  = []string{"finance", "fintech", "business"}
	wellnessKeywords = []string{"health", "wellness", "yoga"}
)

func matchesAny(category string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(category, k) {
			return true
		}
	}
	return false
}

// environmentClause resolves the background sub-instruction by a strict
// priority chain: Custom text first, then category inference for Auto and
// Lifestyle styles, then the per-style table, then a generic mood clause.
// Category inference never overrides an explicit Custom background.
func environmentClause(s settings.Model) string {
	if s.BackgroundStyle == settings.BackgroundCustom {
		custom := s.CustomBackgroundPrompt
		if custom == "" {
			custom = "A generic clean studio background"
		}
		return fmt.Sprintf("CUSTOM SCENE GENERATION: %s. Ensure style matches the device realism.", custom)
	}

	category := strings.ToLower(s.DetectedAppCategory)
	if category == "" {
		category = "general"
	}

	if s.BackgroundStyle == settings.BackgroundAuto || s.BackgroundStyle == settings.BackgroundLifestyle {
		switch {
		case matchesAny(category, foodKeywords):
			return "GOURMET F&B SETTING: High-end restaurant table. Warm wood or marble texture. Soft ambient candlelight. Props: Crystal wine glass, linen napkin, artisan bread. Bokeh highlights. Warm golden hour feel."
		case matchesAny(category, financeKeywords):
			return "EXECUTIVE BUSINESS SETTING: Boardroom table or high-end desk. Leather desk pad. Props: Montblanc pen, espresso cup, laptop edge. Cool professional lighting. City skyline bokeh outside the window."
		case matchesAny(category, wellnessKeywords):
			return "WELLNESS SANCTUARY: Natural stone surface. Dappled sunlight through leaves. Props: Small succulent, rolled towel, herbal tea. Soft organic shadows. Zen atmosphere."
		}
	}

	props := ""
	if len(s.SuggestedProps) > 0 {
		props = fmt.Sprintf(" Background props (blurred): %s.", strings.Join(s.SuggestedProps, ", "))
	}

	switch s.BackgroundStyle {
	case settings.BackgroundStudio:
		return "Infinite cyclorama studio. Pure color backdrop matching the brand palette. No distractions. Maximum focus on the device."
	case settings.BackgroundOffice:
		return "Blurred executive office. Glass walls, mahogany tones. Depth of field (f/2.0). Professional atmosphere." + props
	case settings.BackgroundNature:
		return "Organic nature setting. Smooth river stones, moss, dappled sunlight. Zen garden aesthetic." + props
	case settings.BackgroundGradient:
		return "Abstract mesh gradient (aurora). High-end tech aesthetic. Smooth noise texture. Deep rich colors."
	case settings.BackgroundDark:
		return "Matte black carbon fiber. Dark-mode aesthetic. Low-key lighting. Cyberpunk LED accents. High contrast."
	case settings.BackgroundGeometric:
		return "3D abstract geometry. Glass prisms, subsurface scattering, floating shapes. Octane render style."
	case settings.BackgroundCity:
		return "Bokeh city skyline at twilight. Out-of-focus street lights. Urban luxury vibe."
	default:
		return fmt.Sprintf("Professional environment matching the mood: %s.%s", s.ColorMood, props)
	}
}

// lightingBaseline is the shared three-point setup each studio style builds
// on. Styles that replace the rig entirely (Neon, Natural, Studio Box) do
// not reference it.
const lightingBaseline = "THREE-POINT STUDIO SETUP: 1. Key light (softbox, 45 deg, upper left). 2. Fill light (reflector, 30% intensity). 3. Rim light (back accent, creates separation)."

func lightingClause(l settings.LightingStyle) string {
	switch l {
	case settings.LightingAuto:
		return lightingBaseline + " Choose intensity and contrast to flatter this scene."
	case settings.LightingSoft:
		return lightingBaseline + " Emphasize soft, wrap-around key light. Feathered shadows. High visibility. Commercial look."
	case settings.LightingDramatic:
		return lightingBaseline + " Increase key/rim contrast. Deep shadows. Silhouette effect. Moody cinematic feel."
	case settings.LightingNeon:
		return "CYBERPUNK LIGHTING: Dual-tone gel lighting (cyan left / magenta right). Dark ambient. Reflective surfaces."
	case settings.LightingNatural:
		return "GOLDEN HOUR: Warm sunlight (3500K) casting long, soft shadows from a side window. Organic glow. Lens flare."
	case settings.LightingStudioBox:
		return "COMMERCIAL LIGHTBOX: Pure white light. No harsh shadows. Maximum clarity. Flat product-page style."
	default:
		return lightingBaseline + " Optimized for conversion."
	}
}

func angleClause(a settings.CameraAngle) string {
	switch a {
	case settings.AngleAuto:
		return "CAMERA ANGLE: Choose the most flattering angle for this device and scene."
	case settings.AngleFront:
		return "CAMERA ANGLE: Dead-on front view, screen parallel to the sensor plane."
	case settings.AnglePerspective:
		return "CAMERA ANGLE: 3/4 perspective view with subtle vanishing-point depth."
	case settings.AngleSide:
		return "CAMERA ANGLE: Low side profile emphasizing device thinness, screen still fully visible."
	case settings.AngleTopDown:
		return "CAMERA ANGLE: Elevated top-down flat-lay composition."
	case settings.AngleFloating:
		return "CAMERA ANGLE: Device floating mid-air with a soft drop shadow beneath."
	default:
		return "CAMERA ANGLE: Balanced hero composition with the screen fully visible."
	}
}

// placementDirective is always produced, regardless of the other clauses.
func placementDirective(fit settings.ContentFit) string {
	switch fit {
	case settings.FitTopAlign:
		return "PLACEMENT: Top-align the screenshot content. If the screenshot is taller than the device screen, crop the bottom (simulating a scroll). Ensure the status bar/header is visible."
	case settings.FitContain:
		return "PLACEMENT: Fit the ENTIRE screenshot within the screen boundaries. If aspect ratios differ, add subtle letterboxing or pillarboxing (black bars). Do not crop important UI elements."
	default:
		return "PLACEMENT: Fill the device screen completely (Cover). Crop edges slightly if needed to avoid black bars, but keep the center content visible."
	}
}
