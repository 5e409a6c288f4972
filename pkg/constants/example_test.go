package constants_test

import (
	"fmt"
	"net/http"

	"github.com/agentstation/tagsync/pkg/constants"
)

// Example_timeouts demonstrates timeout constants
func Example_timeouts() {
	client := &http.Client{
		Timeout: constants.DefaultHTTPTimeout,
	}

	fmt.Printf("HTTP timeout: %v\n", client.Timeout)
	// Output:
	// HTTP timeout: 30s
}

// Example_defaults demonstrates the run configuration defaults
func Example_defaults() {
	fmt.Println(constants.DefaultTagPrefix + "env")
	fmt.Println(constants.DefaultIdentityColumn)
	fmt.Println(constants.DefaultEmptyValues)
	// Output:
	// [API]env
	// Name
	// [nan null none n/a]
}
