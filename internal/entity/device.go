package entity

// DeviceProfile is a fixed configuration bundle describing the browsing
// environment a job is audited under. The two predefined instances below
// are the only profiles; they are never mutated at runtime.
type DeviceProfile struct {
	Name                  string  `json:"name"` // "desktop" or "mobile"
	Width                 int     `json:"width"`
	Height                int     `json:"height"`
	ScaleFactor           float64 `json:"scale_factor"`
	Mobile                bool    `json:"mobile"`
	UserAgent             string  `json:"user_agent"`
	RTTMs                 int     `json:"rtt_ms"`
	ThroughputKbps        float64 `json:"throughput_kbps"`
	CPUSlowdownMultiplier float64 `json:"cpu_slowdown_multiplier"`
}

// Desktop mirrors Lighthouse's default desktop emulation settings.
var Desktop = DeviceProfile{
	Name:                  "desktop",
	Width:                 1350,
	Height:                940,
	ScaleFactor:           1,
	Mobile:                false,
	UserAgent:             `Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36`,
	RTTMs:                 40,
	ThroughputKbps:        10240,
	CPUSlowdownMultiplier: 1,
}

// Mobile mirrors Lighthouse's default mobile emulation settings
// (a mid-tier Android device on slow 4G).
var Mobile = DeviceProfile{
	Name:                  "mobile",
	Width:                 412,
	Height:                823,
	ScaleFactor:           1.75,
	Mobile:                true,
	UserAgent:             `Mozilla/5.0 (Linux; Android 11; moto g power (2022)) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36`,
	RTTMs:                 150,
	ThroughputKbps:        1638.4,
	CPUSlowdownMultiplier: 4,
}

// Profiles returns the device profiles in audit order: desktop first,
// then mobile. Ledger ordering depends on this.
func Profiles() []DeviceProfile {
	return []DeviceProfile{Desktop, Mobile}
}
