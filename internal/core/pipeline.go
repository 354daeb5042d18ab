package core

// pipeline.go runs the transformation stages in their fixed order.
//
// Each stage takes the whole dataset and returns a new one; nothing is streamed
// and no stage sees another's intermediate state. The order is part of the
// contract: deduplication runs on normalized heights but raw categoricals, and
// IDs are drawn in final sort order.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/surveyclean/internal/dataset"
	"github.com/JonMunkholm/surveyclean/internal/logging"
)

// Stage names, in execution order.
const (
	StageNormalizeHeight       = "normalize_height"
	StageDropDuplicates        = "drop_duplicates"
	StageNormalizeCategoricals = "normalize_categoricals"
	StageComputeBMI            = "compute_bmi"
	StageWeightStatus          = "weight_status"
	StageFilterInvalid         = "filter_invalid"
	StageSortByHeight          = "sort_by_height"
	StageAssignIDs             = "assign_ids"
	StageAssignSequence        = "assign_sequence"
	StageProject               = "project_columns"
)

// StageFunc transforms a full dataset snapshot.
type StageFunc func(ds *dataset.Dataset) (*dataset.Dataset, error)

// Stage is one named step of the pipeline.
type Stage struct {
	Name  string
	Apply StageFunc
}

// StageStat records the row counts and timing of one executed stage.
type StageStat struct {
	Name     string
	RowsIn   int
	RowsOut  int
	Duration time.Duration
}

// Summary describes what a run did to the data.
type Summary struct {
	RowsIn            int
	RowsOut           int
	DuplicatesRemoved int
	InvalidRemoved    int
	InvalidReasons    map[string]int // Reason* -> records failing that check
	WeightStatus      map[string]int // Category -> records, before the validity filter
	HeightMinCm       float64
	HeightMaxCm       float64
	Stages            []StageStat
}

// Pipeline is the survey transformation. The zero value is not usable; call
// NewPipeline.
type Pipeline struct {
	seed int64
	ids  IDGenerator
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithIDSeed sets the seed of the default ID generator. Each Run starts a fresh
// generator from this seed, so repeated runs yield the same IDs.
func WithIDSeed(seed int64) Option {
	return func(p *Pipeline) { p.seed = seed }
}

// WithIDGenerator replaces the default generator. The generator is shared by
// every Run of this pipeline.
func WithIDGenerator(g IDGenerator) Option {
	return func(p *Pipeline) { p.ids = g }
}

// NewPipeline builds a pipeline seeded with DefaultIDSeed unless overridden.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{seed: DefaultIDSeed}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run applies every stage to ds and returns the delivered dataset. The input is
// not modified. An error means the input lacks a required column or a stage hit
// a schema problem; bad values never produce errors.
func (p *Pipeline) Run(ctx context.Context, ds *dataset.Dataset) (*dataset.Dataset, Summary, error) {
	logger := logging.FromContext(ctx)

	if err := CheckColumns(ds); err != nil {
		return nil, Summary{}, err
	}

	ids := p.ids
	if ids == nil {
		ids = NewSeededIDs(p.seed)
	}

	sum := Summary{
		RowsIn:         ds.Len(),
		InvalidReasons: make(map[string]int),
		WeightStatus:   make(map[string]int),
	}

	stages := []Stage{
		{StageNormalizeHeight, func(d *dataset.Dataset) (*dataset.Dataset, error) {
			out, err := NormalizeHeights(d)
			if err == nil {
				sum.HeightMinCm, sum.HeightMaxCm = heightRange(out)
			}
			return out, err
		}},
		{StageDropDuplicates, func(d *dataset.Dataset) (*dataset.Dataset, error) {
			out, removed := DropExactDuplicates(d)
			sum.DuplicatesRemoved = removed
			return out, nil
		}},
		{StageNormalizeCategoricals, NormalizeCategoricals},
		{StageComputeBMI, ComputeBMI},
		{StageWeightStatus, func(d *dataset.Dataset) (*dataset.Dataset, error) {
			out := ComputeWeightStatus(d)
			for i := 0; i < out.Len(); i++ {
				if s, ok := out.Value(i, ColWeightStatus).(string); ok {
					sum.WeightStatus[s]++
				}
			}
			return out, nil
		}},
		{StageFilterInvalid, func(d *dataset.Dataset) (*dataset.Dataset, error) {
			out, reasons := FilterValid(d)
			sum.InvalidRemoved = d.Len() - out.Len()
			for r, n := range reasons {
				sum.InvalidReasons[r] += n
			}
			return out, nil
		}},
		{StageSortByHeight, SortByHeight},
		{StageAssignIDs, func(d *dataset.Dataset) (*dataset.Dataset, error) {
			return AssignIDs(d, ids), nil
		}},
		{StageAssignSequence, AssignSequence},
		{StageProject, ProjectFinal},
	}

	cur := ds
	for _, st := range stages {
		start := time.Now()
		out, err := st.Apply(cur)
		if err != nil {
			return nil, sum, fmt.Errorf("stage %s: %w", st.Name, err)
		}
		stat := StageStat{Name: st.Name, RowsIn: cur.Len(), RowsOut: out.Len(), Duration: time.Since(start)}
		sum.Stages = append(sum.Stages, stat)
		logger.Debug("stage complete",
			"stage", st.Name,
			"rows_in", stat.RowsIn,
			"rows_out", stat.RowsOut,
			"duration", stat.Duration,
		)
		cur = out
	}

	sum.RowsOut = cur.Len()
	logger.Info("pipeline complete",
		"rows_in", sum.RowsIn,
		"rows_out", sum.RowsOut,
		"duplicates_removed", sum.DuplicatesRemoved,
		"invalid_removed", sum.InvalidRemoved,
	)
	return cur, sum, nil
}

// CheckColumns verifies the columns the pipeline reads are present. A dataset
// whose heights were already normalized may carry height_cm instead of
// height_raw.
func CheckColumns(ds *dataset.Dataset) error {
	var missing []string
	for _, c := range RequiredColumns {
		if c == ColHeightRaw && ds.Has(ColHeightCm) {
			continue
		}
		if !ds.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// NormalizeHeights converts the raw height column to centimetres. The column is
// renamed to height_cm and keeps its position, so later duplicate checks compare
// the canonical value.
func NormalizeHeights(ds *dataset.Dataset) (*dataset.Dataset, error) {
	src := ds
	if ds.Has(ColHeightRaw) {
		var err error
		src, err = ds.RenameColumn(ColHeightRaw, ColHeightCm)
		if err != nil {
			return nil, err
		}
	}
	return src.AddColumn(ColHeightCm, func(i int) any {
		if cm, ok := NormalizeHeight(src.Value(i, ColHeightCm)); ok {
			return cm
		}
		return nil
	}), nil
}

// NormalizeCategoricals capitalizes marital status and sex and folds
// "Divorced/separated" into "Divorced". Non-text and missing cells pass through.
func NormalizeCategoricals(ds *dataset.Dataset) (*dataset.Dataset, error) {
	out := ds.AddColumn(ColMaritalStatus, func(i int) any {
		if s, ok := ds.Value(i, ColMaritalStatus).(string); ok {
			return CanonicalMaritalStatus(s)
		}
		return ds.Value(i, ColMaritalStatus)
	})
	return out.AddColumn(ColSex, func(i int) any {
		if s, ok := out.Value(i, ColSex).(string); ok {
			return CapitalizeFirst(s)
		}
		return out.Value(i, ColSex)
	}), nil
}

// ComputeBMI coerces age and weight to numbers and adds the bmi column.
func ComputeBMI(ds *dataset.Dataset) (*dataset.Dataset, error) {
	out := ds.AddColumn(ColAge, func(i int) any { return numberCell(ds.Value(i, ColAge)) })
	out = out.AddColumn(ColWeightKg, func(i int) any { return numberCell(ds.Value(i, ColWeightKg)) })
	return out.AddColumn(ColBMI, func(i int) any {
		if bmi, ok := BMI(out.Value(i, ColWeightKg), out.Value(i, ColHeightCm)); ok {
			return bmi
		}
		return nil
	}), nil
}

// ComputeWeightStatus adds the weight_status column derived from bmi.
func ComputeWeightStatus(ds *dataset.Dataset) *dataset.Dataset {
	return ds.AddColumn(ColWeightStatus, func(i int) any {
		bmi, ok := ToNumber(ds.Value(i, ColBMI))
		return WeightStatus(bmi, ok)
	})
}

// FilterValid keeps records passing ValidateRecord and counts each failed check.
// A record failing several checks counts once per reason.
func FilterValid(ds *dataset.Dataset) (*dataset.Dataset, map[string]int) {
	reasons := make(map[string]int)
	out := ds.Filter(func(i int) bool {
		res := ValidateRecord(ds, i)
		for _, e := range res.Errors {
			reasons[e.Reason]++
		}
		return res.Valid
	})
	return out, reasons
}

// SortByHeight orders records by height_cm, tallest first. Equal heights keep
// their current relative order and missing heights sort last.
func SortByHeight(ds *dataset.Dataset) (*dataset.Dataset, error) {
	return ds.SortStable(func(a, b int) bool {
		ha, okA := ToNumber(ds.Value(a, ColHeightCm))
		hb, okB := ToNumber(ds.Value(b, ColHeightCm))
		if !okA || !okB {
			return okA && !okB
		}
		return ha > hb
	}), nil
}

// AssignIDs draws one ID per record, in row order.
func AssignIDs(ds *dataset.Dataset, ids IDGenerator) *dataset.Dataset {
	return ds.AddColumn(ColID, func(int) any { return ids.Next() })
}

// AssignSequence numbers records 1..n in row order.
func AssignSequence(ds *dataset.Dataset) (*dataset.Dataset, error) {
	return ds.AddColumn(ColSequence, func(i int) any { return int64(i + 1) }), nil
}

// ProjectFinal reorders to FinalColumns and drops everything else.
func ProjectFinal(ds *dataset.Dataset) (*dataset.Dataset, error) {
	return ds.Select(FinalColumns)
}

func heightRange(ds *dataset.Dataset) (lo, hi float64) {
	first := true
	for i := 0; i < ds.Len(); i++ {
		h, ok := ToNumber(ds.Value(i, ColHeightCm))
		if !ok {
			continue
		}
		if first || h < lo {
			lo = h
		}
		if first || h > hi {
			hi = h
		}
		first = false
	}
	return lo, hi
}
