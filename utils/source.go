package utils

import (
	"runtime"
	"strconv"
	"strings"
)

var sourceDir string

func init() {
	_, file, _, _ := runtime.Caller(0)

	// strip utils/source.go to get the module root
	sourceDir = strings.TrimSuffix(file, "utils/source.go")
}

// FileWithLineNum returns file:line of the first caller outside this module,
// test files excepted so failures point at the test that raised them.
func FileWithLineNum() string {
	for i := 2; i < 15; i++ {
		_, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		if !strings.HasPrefix(file, sourceDir) || strings.HasSuffix(file, "_test.go") {
			return file + ":" + strconv.FormatInt(int64(line), 10)
		}
	}

	return ""
}
