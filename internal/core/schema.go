package core

import "strings"

// Column names of the working schema.
const (
	ColAge           = "age"
	ColMaritalStatus = "marital_status"
	ColSex           = "sex"
	ColEducation     = "education"
	ColWeightKg      = "body_weight_kg"
	ColHeightRaw     = "height_raw"
	ColHeightCm      = "height_cm"
	ColBMI           = "bmi"
	ColWeightStatus  = "weight_status"
	ColID            = "id"
	ColSequence      = "sequence_index"
)

// FinalColumns is the fixed column order of the delivered dataset.
var FinalColumns = []string{
	ColAge,
	ColMaritalStatus,
	ColSex,
	ColWeightKg,
	ColHeightCm,
	ColID,
	ColSequence,
	ColBMI,
	ColWeightStatus,
}

// RequiredColumns must be present (in any order) before the pipeline runs.
var RequiredColumns = []string{ColAge, ColMaritalStatus, ColSex, ColWeightKg, ColHeightRaw}

// CleanColumns is the column subset kept by the companion cleaning stage.
var CleanColumns = []string{ColAge, ColMaritalStatus, ColSex, ColEducation, ColWeightKg, ColHeightRaw}

// DemographicKeys is the default key subset for key-subset duplicate detection.
var DemographicKeys = CleanColumns

// ColumnLabels carries the descriptive label of each delivered column for formats
// that store variable labels.
var ColumnLabels = map[string]string{
	ColAge:           "How old are you",
	ColMaritalStatus: "Marital Status",
	ColSex:           "Are you male or female",
	ColWeightKg:      "Your body weight (kg)",
	ColHeightCm:      "Your height (cm)",
	ColID:            "Unique ID",
	ColSequence:      "Record Index",
	ColBMI:           "Body Mass Index",
	ColWeightStatus:  "Weight Status Category",
}

// headerAliases maps survey export headers (lowercased) to schema columns.
var headerAliases = map[string]string{
	"howoldareyou":                      ColAge,
	"maritalstatus":                     ColMaritalStatus,
	"areyoumaleorfemale":                ColSex,
	"whatisyourhighestlevelofeducation": ColEducation,
	"yourbodyweight":                    ColWeightKg,
	"yourheight":                        ColHeightRaw,
	"bmi":                               ColBMI,
	"weigthstatus":                      ColWeightStatus,
	"@_id":                              ColID,
	"@_index":                           ColSequence,
}

// CanonicalColumn maps a source header to its schema name. Headers that are not
// part of the schema come back trimmed but otherwise untouched so they can pass
// through opaquely.
func CanonicalColumn(header string) string {
	h := strings.TrimSpace(header)
	if c, ok := headerAliases[strings.ToLower(h)]; ok {
		return c
	}
	return h
}

// CanonicalColumns applies CanonicalColumn to every header.
func CanonicalColumns(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = CanonicalColumn(h)
	}
	return out
}
