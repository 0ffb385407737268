/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment bool
	ServiceName   string
	ByPassAuth    bool
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "name reported to logging and tracing")
	flag.BoolVar(&ByPassAuth, "bypass_auth", false, "skip session validation, development only")
}

// Parse must be called once from main, before flag values are read. Test
// binaries never call it, so the testing package keeps ownership of its own
// flags there.
func Parse() {
	flag.Parse()
}
