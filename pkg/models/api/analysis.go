package api

// ResultRecord is one analysis outcome for one uploaded dataset, as
// returned by the analysis backend. Field names match the backend
// response exactly. Optional metrics are pointers; absent values are
// rendered as "-" by the report engine rather than a zero.
type ResultRecord struct {
	ID       string `json:"id,omitempty"`
	Filename string `json:"filename"`
	Date     string `json:"date"`

	AreaHa    float64 `json:"area_ha"`
	VolumeM3  float64 `json:"volume_m3,omitempty"`
	VolumeTMC float64 `json:"volume_tmc"`

	WaterLevel       *float64 `json:"water_level,omitempty"`
	BaseLevel        *float64 `json:"base_level,omitempty"`
	VolumeAtLevelM3  *float64 `json:"volume_at_level_m3,omitempty"`
	VolumeAtLevelTMC *float64 `json:"volume_at_level_tmc,omitempty"`

	MinElevation float64 `json:"min_elevation,omitempty"`
	MaxElevation float64 `json:"max_elevation,omitempty"`

	// Image slots: bare filenames resolvable against the backend's
	// output path. Empty means the slot was not produced.
	CompositeMap      string `json:"composite_map,omitempty"`
	CombinedVolumeMap string `json:"combined_volume_map,omitempty"`
	FrequencyMap      string `json:"frequency_map,omitempty"`
	ComparisonMap     string `json:"comparison_map,omitempty"`
	ResultImage       string `json:"result_image,omitempty"`

	Message string `json:"message,omitempty"`
}

// DetailImageRef picks the image shown in a record's detail block:
// the comparison map when present, otherwise the raw result image.
// Empty means the detail block has no image.
func (r ResultRecord) DetailImageRef() string {
	if r.ComparisonMap != "" {
		return r.ComparisonMap
	}
	return r.ResultImage
}

// ReportRequest is the input to one report generation run. Records
// are rendered in input order and never mutated; record 0 is the
// base/reference dataset.
type ReportRequest struct {
	ProjectTitle string         `json:"project_title"`
	Records      []ResultRecord `json:"records"`
}

// ErrorResponse is the backend's failure shape. The analysis endpoint
// reports pipeline failures with HTTP 200 and this body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
