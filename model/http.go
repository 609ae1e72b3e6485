package model

type GenerateRequestBody struct {
	Key  string `json:"key"`
	Mode string `json:"mode"`
}

type SwapRequestBody struct {
	Progression Progression `json:"progression"`
	Index       int         `json:"index"`
	Mode        string      `json:"mode"`

	// NOTE: nil means "use the clock"
	Seed *int64 `json:"seed,omitempty"`
}

type SwapResponse struct {
	Chord       Chord       `json:"chord"`
	Progression Progression `json:"progression"`
	Seed        int64       `json:"seed"`
}

type LoopRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type ScheduleRequestBody struct {
	Progression Progression `json:"progression"`
	GroupNext   []bool      `json:"group_next"`
	GroupAll    bool        `json:"group_all"`
	Loop        *LoopRange  `json:"loop,omitempty"`
}

type TiePlanResponse struct {
	SustainGlobal []int         `json:"sustain_global"`
	SustainNext   map[int][]int `json:"sustain_next"`
}

type ScheduleResponse struct {
	Events     []NoteEvent     `json:"events"`
	TiePlan    TiePlanResponse `json:"tie_plan"`
	TotalBeats float64         `json:"total_beats"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

type ExportRequestBody struct {
	ScheduleRequestBody

	// NOTE: false writes chord by chord, true writes the scheduled events
	Tied bool `json:"tied"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ArrangeRequestBody struct {
	Progression Progression `json:"progression"`
	GroupNext   []bool      `json:"group_next"`
	Op          string      `json:"op"`

	// NOTE: index is the chord edited, moved or copied; -1 inserts first
	Index int `json:"index"`
	To    int `json:"to"`
	Delta int `json:"delta"`

	// NOTE: chord to insert
	Root    string `json:"root,omitempty"`
	Quality string `json:"quality,omitempty"`
}

type ArrangeResponse struct {
	Progression Progression `json:"progression"`
	GroupNext   []bool      `json:"group_next"`
}
