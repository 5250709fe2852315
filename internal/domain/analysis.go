package domain

import (
	"time"

	"github.com/google/uuid"
)

// Region identifica uma sub-região anatômica da face
type Region string

const (
	RegionForehead   Region = "forehead"
	RegionLeftCheek  Region = "left_cheek"
	RegionRightCheek Region = "right_cheek"
	RegionNose       Region = "nose"
	RegionChin       Region = "chin"
)

// Regions lists every facial region in extraction order.
var Regions = []Region{
	RegionForehead,
	RegionLeftCheek,
	RegionRightCheek,
	RegionNose,
	RegionChin,
}

// Condition identifica uma condição de pele pontuada de 0 a 100
type Condition string

const (
	ConditionPores        Condition = "pores"
	ConditionWrinkles     Condition = "wrinkles"
	ConditionPigmentation Condition = "pigmentation"
	ConditionAcne         Condition = "acne"
	ConditionTexture      Condition = "texture"
	ConditionRedness      Condition = "redness"
	ConditionBlackheads   Condition = "blackheads"
	ConditionTone         Condition = "tone"
)

// Conditions lists every scored skin condition.
var Conditions = []Condition{
	ConditionPores,
	ConditionWrinkles,
	ConditionPigmentation,
	ConditionAcne,
	ConditionTexture,
	ConditionRedness,
	ConditionBlackheads,
	ConditionTone,
}

// ConditionScores maps each condition to a score in [0,100].
type ConditionScores map[Condition]float64

// EyeFeatures representa as métricas da região dos olhos, em média
// sobre os olhos detectados
type EyeFeatures struct {
	Wrinkles    float64 `json:"wrinkles"`
	DarkCircles float64 `json:"dark_circles"`
	Puffiness   float64 `json:"puffiness"`
	FineLines   float64 `json:"fine_lines"`
}

// AgeAnalysis representa a estimativa de idade aparente e idade dos olhos
type AgeAnalysis struct {
	ActualAge        int `json:"actual_age"`
	PerceivedAge     int `json:"perceived_age"`
	AgeDifference    int `json:"age_difference"`
	EyeAge           int `json:"eye_age"`
	EyeAgeDifference int `json:"eye_age_difference"`
}

// Analysis is the record produced by one engine call.
type Analysis struct {
	OverallScore float64                    `json:"overall_score"`
	Regions      map[Region]ConditionScores `json:"regions"`
	Conditions   ConditionScores            `json:"conditions"`
	AgeAnalysis  AgeAnalysis                `json:"age_analysis"`
}

// SkinTone is an Individual Typology Angle category.
type SkinTone string

const (
	SkinToneVeryLight    SkinTone = "Very Light"
	SkinToneLight        SkinTone = "Light"
	SkinToneIntermediate SkinTone = "Intermediate"
	SkinToneTan          SkinTone = "Tan"
	SkinToneBrown        SkinTone = "Brown"
	SkinToneDark         SkinTone = "Dark"
)

// Insights groups the rule-based interpretations derived from an Analysis.
type Insights struct {
	SkinTone         SkinTone             `json:"skin_tone"`
	ITA              float64              `json:"ita"`
	SkinType         string               `json:"skin_type"`
	UVAdvice         string               `json:"uv_advice"`
	PigmentationRisk string               `json:"pigmentation_risk"`
	Severity         map[Condition]string `json:"severity"`
}

// SkinReport representa o resultado de uma análise servida pela API
type SkinReport struct {
	ID        uuid.UUID `json:"id"`
	Face      FaceBox   `json:"face"`
	Analysis  *Analysis `json:"skin_analysis"`
	Insights  *Insights `json:"insights"`
	LatencyMs int64     `json:"latency_ms"`
	CreatedAt time.Time `json:"created_at"`
}

// FaceBox is the analysed face rectangle in pixels of the uploaded image.
type FaceBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}
