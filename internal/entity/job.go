package entity

// PageTarget is one row of the input list: a URL to audit and a
// human-readable label for reports.
type PageTarget struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// JobSpec identifies one unit of work: a target audited under one device
// profile. Immutable once created; the orchestrator produces the cross
// product of the target list and the device profiles.
type JobSpec struct {
	Target PageTarget    `json:"target"`
	Device DeviceProfile `json:"device"`
}
