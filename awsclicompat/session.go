// Package awsclicompat creates AWS sessions that behave like the AWS
// CLI: the shared config file is honored, and the region and profile
// can be overridden per invocation.
package awsclicompat

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
)

func NewSession(region, profile string) *session.Session {
	opts := session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}

	if region != "" {
		opts.Config = aws.Config{Region: aws.String(region)}
	}

	if profile != "" {
		opts.Profile = profile
	}

	return session.Must(session.NewSessionWithOptions(opts))
}
