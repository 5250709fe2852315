package deepface

// FacialArea is the face box DeepFace reports, in pixels of the sent image
type FacialArea struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// AnalyzeRequest for POST /analyze
type AnalyzeRequest struct {
	Img              string   `json:"img"`
	Actions          []string `json:"actions"` // ["age", "gender", "emotion", "race"]
	Detector         string   `json:"detector_backend"`
	EnforceDetection bool     `json:"enforce_detection"`
}

// AnalyzeResponse from POST /analyze
type AnalyzeResponse struct {
	Results []AnalyzeResult `json:"results"`
}

type AnalyzeResult struct {
	Region FacialArea `json:"region"`
	Age    float64    `json:"age"`
}
