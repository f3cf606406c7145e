package model

import (
	"math"
	"sort"
)

// ValueCount is the frequency of one distinct value within a column.
type ValueCount struct {
	Value string
	Count int
	// Percent is Count relative to all non-missing values, in 0..100.
	Percent float64
}

// NumericSummary holds descriptive statistics of a numeric column.
type NumericSummary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// CategoricalSummary holds descriptive statistics of a textual column.
type CategoricalSummary struct {
	Count  int
	Unique int
	Top    string
	Freq   int
}

// Quantile returns the q-th quantile (0 <= q <= 1) of sorted values using
// linear interpolation between the closest ranks. It returns NaN for no values.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// DescribeNumeric summarises values. The input does not need to be sorted.
// Std is the sample standard deviation and is NaN for fewer than two values.
func DescribeNumeric(values []float64) NumericSummary {
	n := len(values)
	if n == 0 {
		nan := math.NaN()
		return NumericSummary{Mean: nan, Std: nan, Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	std := math.NaN()
	if n > 1 {
		var sq float64
		for _, v := range sorted {
			d := v - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(n-1))
	}

	return NumericSummary{
		Count:  n,
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
		Max:    sorted[n-1],
	}
}

// DescribeCategorical summarises value counts ordered by descending frequency.
func DescribeCategorical(counts []ValueCount) CategoricalSummary {
	var s CategoricalSummary
	for _, vc := range counts {
		s.Count += vc.Count
	}
	s.Unique = len(counts)
	if len(counts) > 0 {
		s.Top = counts[0].Value
		s.Freq = counts[0].Count
	}
	return s
}
