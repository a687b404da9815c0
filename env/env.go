package env

import (
	"flag"
	"os"
	"strings"
	"sync"
)

// Name is the name of a runtime environment
type Name string

const (
	envVarName = "APP_ENV"

	Production  Name = "production"
	Staging     Name = "staging"
	Development Name = "development"
	Test        Name = "test"
)

var (
	mu      sync.Mutex
	current Name
)

// Current returns the environment the process is running in.
// APP_ENV wins, test binaries resolve to test, everything else is development.
func Current() Name {
	mu.Lock()
	defer mu.Unlock()

	if current == "" {
		current = Detect(os.Getenv(envVarName), os.Args[0])
	}
	return current
}

// Set overrides the detected environment; an empty name resets detection.
func Set(name Name) {
	mu.Lock()
	defer mu.Unlock()

	current = name
}

// Detect resolves an environment from an explicit value and the binary path
func Detect(value, binary string) Name {
	if value != "" {
		return Name(strings.ToLower(value))
	}

	if strings.HasSuffix(binary, ".test") || strings.Contains(binary, "/_test/") {
		return Test
	}

	if flag.Lookup("test.v") != nil {
		return Test
	}

	return Development
}

func (n Name) String() string { return string(n) }

// IsTest returns if current env is test
func (n Name) IsTest() bool { return n == Test }

// IsProduction returns true if we are running in production mode
func (n Name) IsProduction() bool { return n == Production }

// IsDevelopment returns true if current env is development
func (n Name) IsDevelopment() bool { return n == Development }

// IsStaging returns true if current env is staging
func (n Name) IsStaging() bool { return n == Staging }

// IsDevelopmentOrTest returns true if we are development or test mode
// this is good for stubs
func (n Name) IsDevelopmentOrTest() bool { return n.IsTest() || n.IsDevelopment() }

// Is checks the current environment against the given name
func Is(name Name) bool { return Current() == name }

func IsTest() bool        { return Current().IsTest() }
func IsProduction() bool  { return Current().IsProduction() }
func IsDevelopment() bool { return Current().IsDevelopment() }
