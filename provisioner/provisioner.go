// Package provisioner turns a firehosegen configuration into applied or
// delivered delivery streams.
// There are two provisioners:
// - Render provisioner which writes the resolved document to a store for an external engine
// - Builtin AWS provisioner which creates the declared resources directly via the AWS APIs
package provisioner

import (
	"github.com/flowtide/firehosegen/provisioner/plugin"
)

type Result struct {
	plugin.Result
}
