// Package dataio loads and saves survey datasets.
//
// CSV is the working format between commands. Stata and SAS files are read
// through datareader as an alternative source; Parquet and Postgres are
// optional outputs for the delivered dataset.
package dataio
