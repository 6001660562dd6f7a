package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Index   bool
	Extract bool
	Write   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Index = boolEnv("MPMAP_DEBUG_INDEX")
	d.Extract = boolEnv("MPMAP_DEBUG_EXTRACT")
	d.Write = boolEnv("MPMAP_DEBUG_WRITE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Index() bool {
	return d.Index
}
func Extract() bool {
	return d.Extract
}
func Write() bool {
	return d.Write
}
