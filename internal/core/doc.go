// Package core provides the survey cleaning rules and the transformation
// pipeline.
//
// The package holds all domain logic independent of file formats and
// commands. Loading and saving live in dataio; the commands in cmd/ wire the
// two together.
//
// # Pipeline
//
// [Pipeline.Run] applies a fixed sequence of whole-dataset stages:
//
//  1. Normalize heights to centimetres (height_raw becomes height_cm)
//  2. Drop exact duplicate records, keeping the first
//  3. Capitalize marital status and sex
//  4. Compute BMI from weight and height
//  5. Derive the weight status category
//  6. Drop records with missing fields or an implausible BMI
//  7. Sort by height, tallest first
//  8. Assign synthetic eight-digit IDs
//  9. Number records 1..n
//  10. Project to [FinalColumns]
//
// Bad values never fail a run. Unparseable cells become missing and the
// record is dropped by the validity filter.
//
// # Duplicate Detection
//
// [AnalyzeDuplicates] reports exact duplicates, key-column duplicates and
// (optionally) near-duplicate pairs. [DropDuplicates] removes them with a
// [KeepStrategy].
//
// # Error Handling
//
// I/O and setup failures wrap one of the sentinel errors and are mapped to
// operator messages with [MapError]:
//
//   - FILE001-FILE006: source and destination problems
//   - EXP001: binary export failed
//   - DB004: database sink unreachable
package core
