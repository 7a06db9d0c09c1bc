package zipffy

import (
	"flag"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// keep verbose traces out of glog's log files
	flag.Set("logtostderr", "true")
	os.Exit(m.Run())
}
