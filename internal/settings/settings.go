// Package settings defines the mockup generation configuration: the enum
// types a request is built from, coercion of untrusted enum strings at
// system boundaries, and the defaults applied when a field is absent.
package settings

import (
	"fmt"
	"strings"
)

// DeviceType selects the hardware the screenshot is composited onto.
type DeviceType string

const (
	// DeviceAuto defers device selection to the model based on the
	// screenshot's aspect ratio.
	DeviceAuto          DeviceType = "Auto"
	DeviceSmartphone    DeviceType = "Smartphone"
	DeviceMarketingHero DeviceType = "Marketing Hero"
	DeviceLaptop        DeviceType = "Laptop"
	DeviceDesktop       DeviceType = "Desktop"
	DeviceTablet        DeviceType = "Tablet"
	DeviceSmartWatch    DeviceType = "Smart Watch"
)

// BackgroundStyle selects the environment behind the device.
type BackgroundStyle string

const (
	BackgroundAuto      BackgroundStyle = "Auto"
	BackgroundStudio    BackgroundStyle = "Studio"
	BackgroundOffice    BackgroundStyle = "Office"
	BackgroundNature    BackgroundStyle = "Nature"
	BackgroundGradient  BackgroundStyle = "Gradient"
	BackgroundDark      BackgroundStyle = "Dark"
	BackgroundGeometric BackgroundStyle = "Geometric"
	BackgroundCity      BackgroundStyle = "City"
	BackgroundLifestyle BackgroundStyle = "Lifestyle"
	// BackgroundCustom means CustomBackgroundPrompt is used verbatim.
	BackgroundCustom BackgroundStyle = "Custom"
)

// LightingStyle selects the lighting rig described in the prompt.
type LightingStyle string

const (
	// LightingAuto defers rig selection to the model.
	LightingAuto      LightingStyle = "Auto"
	LightingSoft      LightingStyle = "Soft"
	LightingDramatic  LightingStyle = "Dramatic"
	LightingNeon      LightingStyle = "Neon"
	LightingNatural   LightingStyle = "Natural"
	LightingStudioBox LightingStyle = "Studio Box"
)

// CameraAngle selects the virtual camera position.
type CameraAngle string

const (
	AngleAuto        CameraAngle = "Auto"
	AngleFront       CameraAngle = "Front"
	AnglePerspective CameraAngle = "Perspective"
	AngleSide        CameraAngle = "Side"
	AngleTopDown     CameraAngle = "Top Down"
	AngleFloating    CameraAngle = "Floating"
)

// ContentFit governs how the screenshot is placed on the device screen.
type ContentFit string

const (
	FitCover    ContentFit = "Cover"
	FitContain  ContentFit = "Contain"
	FitTopAlign ContentFit = "Top Align"
)

// Model is one complete generation configuration. Values are passed by
// value per operation; workflows never share a mutable instance.
type Model struct {
	DeviceType      DeviceType
	BackgroundStyle BackgroundStyle
	Lighting        LightingStyle
	Angle           CameraAngle
	ColorMood       string
	ContentFit      ContentFit

	Description            string
	CustomBackgroundPrompt string
	MarketingTagline       string
	CustomPrompt           string // visual strategy note from analysis

	// Consumed once by metadata generation, never auto-reapplied.
	TargetSEOTitle      string
	TargetSocialCaption string

	EnableABTesting bool

	// Analysis-derived fields, optional.
	DetectedAppCategory string
	DetectedAudience    string
	DetectedColors      []string
	SuggestedProps      []string
}

// Defaults returns the configuration used for a fresh session.
func Defaults() Model {
	return Model{
		DeviceType:      DeviceSmartphone,
		BackgroundStyle: BackgroundStudio,
		Lighting:        LightingSoft,
		Angle:           AnglePerspective,
		ColorMood:       "Professional, Clean",
		ContentFit:      FitCover,
	}
}

// Validate checks the cross-field invariants that cannot be expressed by
// the types alone. A Custom background requires its prompt text.
func (m Model) Validate() error {
	if m.BackgroundStyle == BackgroundCustom && strings.TrimSpace(m.CustomBackgroundPrompt) == "" {
		return fmt.Errorf("background style %q requires a custom background prompt", BackgroundCustom)
	}
	return nil
}

var deviceTypes = []DeviceType{
	DeviceAuto, DeviceSmartphone, DeviceMarketingHero, DeviceLaptop,
	DeviceDesktop, DeviceTablet, DeviceSmartWatch,
}

var backgroundStyles = []BackgroundStyle{
	BackgroundAuto, BackgroundStudio, BackgroundOffice, BackgroundNature,
	BackgroundGradient, BackgroundDark, BackgroundGeometric, BackgroundCity,
	BackgroundLifestyle, BackgroundCustom,
}

var lightingStyles = []LightingStyle{
	LightingAuto, LightingSoft, LightingDramatic, LightingNeon, LightingNatural, LightingStudioBox,
}

var cameraAngles = []CameraAngle{
	AngleAuto, AngleFront, AnglePerspective, AngleSide, AngleTopDown, AngleFloating,
}

var contentFits = []ContentFit{FitCover, FitContain, FitTopAlign}

// The Coerce functions map untrusted strings (model output, user input)
// onto a known enum value. Unknown values substitute a safe default so a
// semantically-unknown but well-formed response never fails a workflow.

// CoerceDevice maps s onto a known DeviceType, defaulting to Smartphone.
func CoerceDevice(s string) DeviceType {
	for _, v := range deviceTypes {
		if string(v) == s {
			return v
		}
	}
	return DeviceSmartphone
}

// CoerceBackground maps s onto a known BackgroundStyle, defaulting to Gradient.
func CoerceBackground(s string) BackgroundStyle {
	for _, v := range backgroundStyles {
		if string(v) == s {
			return v
		}
	}
	return BackgroundGradient
}

// CoerceLighting maps s onto a known LightingStyle, defaulting to Soft.
func CoerceLighting(s string) LightingStyle {
	for _, v := range lightingStyles {
		if string(v) == s {
			return v
		}
	}
	return LightingSoft
}

// CoerceAngle maps s onto a known CameraAngle, defaulting to Perspective.
func CoerceAngle(s string) CameraAngle {
	for _, v := range cameraAngles {
		if string(v) == s {
			return v
		}
	}
	return AnglePerspective
}

// CoerceFit maps s onto a known ContentFit, defaulting to Cover.
func CoerceFit(s string) ContentFit {
	for _, v := range contentFits {
		if string(v) == s {
			return v
		}
	}
	return FitCover
}
