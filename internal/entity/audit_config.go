package entity

// Audit category identifiers as the audit engine names them.
const (
	CategoryPerformance   = "performance"
	CategoryAccessibility = "accessibility"
	CategoryBestPractices = "best-practices"
	CategorySEO           = "seo"
)

// ThrottlingConfig is the simulated network/CPU throttling applied by the
// audit engine.
type ThrottlingConfig struct {
	RTTMs                 int
	ThroughputKbps        float64
	CPUSlowdownMultiplier float64
}

// ScreenEmulation is the viewport emulation applied by the audit engine.
type ScreenEmulation struct {
	Mobile            bool
	Width             int
	Height            int
	DeviceScaleFactor float64
}

// AuditConfig is the configuration handed to the audit engine for one job.
// It is derived deterministically from a DeviceProfile.
type AuditConfig struct {
	Categories      []string
	FormFactor      string // "desktop" or "mobile"
	Throttling      ThrottlingConfig
	ScreenEmulation ScreenEmulation
	UserAgent       string
}

// ConfigForDevice derives the engine configuration for a device profile.
// All four categories are always audited.
func ConfigForDevice(device DeviceProfile) AuditConfig {
	return AuditConfig{
		Categories: []string{
			CategoryPerformance,
			CategoryAccessibility,
			CategoryBestPractices,
			CategorySEO,
		},
		FormFactor: device.Name,
		Throttling: ThrottlingConfig{
			RTTMs:                 device.RTTMs,
			ThroughputKbps:        device.ThroughputKbps,
			CPUSlowdownMultiplier: device.CPUSlowdownMultiplier,
		},
		ScreenEmulation: ScreenEmulation{
			Mobile:            device.Mobile,
			Width:             device.Width,
			Height:            device.Height,
			DeviceScaleFactor: device.ScaleFactor,
		},
		UserAgent: device.UserAgent,
	}
}
