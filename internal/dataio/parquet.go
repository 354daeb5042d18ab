package dataio

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/JonMunkholm/surveyclean/internal/core"
	"github.com/JonMunkholm/surveyclean/internal/dataset"
)

// surveyRecord is one delivered record in Parquet form. Every field is optional
// so missing cells survive the round trip.
type surveyRecord struct {
	Age           *float64 `parquet:"name=age, type=DOUBLE, repetitiontype=OPTIONAL"`
	MaritalStatus *string  `parquet:"name=marital_status, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Sex           *string  `parquet:"name=sex, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	BodyWeightKg  *float64 `parquet:"name=body_weight_kg, type=DOUBLE, repetitiontype=OPTIONAL"`
	HeightCm      *float64 `parquet:"name=height_cm, type=DOUBLE, repetitiontype=OPTIONAL"`
	ID            *int64   `parquet:"name=id, type=INT64, repetitiontype=OPTIONAL"`
	SequenceIndex *int64   `parquet:"name=sequence_index, type=INT64, repetitiontype=OPTIONAL"`
	BMI           *float64 `parquet:"name=bmi, type=DOUBLE, repetitiontype=OPTIONAL"`
	WeightStatus  *string  `parquet:"name=weight_status, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

// parquetParallelism is the number of goroutines the writer uses to encode pages.
const parquetParallelism = 4

// ExportParquet writes the delivered dataset to path as Snappy-compressed
// Parquet. Every failure wraps ErrExportUnavailable; callers log it and move on.
func ExportParquet(ds *dataset.Dataset, path string) (err error) {
	final, err := ds.Select(core.FinalColumns)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrExportUnavailable, err)
	}
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("%w: %w", core.ErrExportUnavailable, err)
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", core.ErrExportUnavailable, path, err)
	}
	defer func() {
		if cerr := fw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %w", core.ErrExportUnavailable, path, cerr)
		}
	}()

	pw, err := writer.NewParquetWriter(fw, new(surveyRecord), parquetParallelism)
	if err != nil {
		return fmt.Errorf("%w: parquet writer: %w", core.ErrExportUnavailable, err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := 0; i < final.Len(); i++ {
		if err := pw.Write(toSurveyRecord(final, i)); err != nil {
			return fmt.Errorf("%w: write record %d: %w", core.ErrExportUnavailable, i, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("%w: finish %s: %w", core.ErrExportUnavailable, path, err)
	}
	return nil
}

func toSurveyRecord(ds *dataset.Dataset, i int) surveyRecord {
	return surveyRecord{
		Age:           floatPtr(ds.Value(i, core.ColAge)),
		MaritalStatus: stringPtr(ds.Value(i, core.ColMaritalStatus)),
		Sex:           stringPtr(ds.Value(i, core.ColSex)),
		BodyWeightKg:  floatPtr(ds.Value(i, core.ColWeightKg)),
		HeightCm:      floatPtr(ds.Value(i, core.ColHeightCm)),
		ID:            intPtr(ds.Value(i, core.ColID)),
		SequenceIndex: intPtr(ds.Value(i, core.ColSequence)),
		BMI:           floatPtr(ds.Value(i, core.ColBMI)),
		WeightStatus:  stringPtr(ds.Value(i, core.ColWeightStatus)),
	}
}

func floatPtr(v any) *float64 {
	f, ok := core.ToNumber(v)
	if !ok {
		return nil
	}
	return &f
}

func stringPtr(v any) *string {
	s, ok := core.ToText(v)
	if !ok {
		return nil
	}
	return &s
}

func intPtr(v any) *int64 {
	if v == nil {
		return nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return nil
	}
	return &n
}
