// Package pointers builds the optional fields on vendor and product records.
package pointers

import "time"

func Float64(v float64) *float64  { return &v }
func Int(v int) *int              { return &v }
func Time(v time.Time) *time.Time { return &v }
