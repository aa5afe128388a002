// Package awsmeta resolves the ambient AWS identity values that
// configuration defaults derive from: the caller's account ID and the
// region name.
//
// Both lookups are lazy and cached, so a resolution run performs each
// underlying API call at most once, and not at all when nothing asked
// for the value.
package awsmeta

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/pkg/errors"

	"github.com/flowtide/firehosegen/awsclicompat"
)

// CallerMetadata looks up the account ID via STS and the region from
// the session configuration, falling back to the EC2 instance metadata
// service when the session carries no region.
type CallerMetadata struct {
	AWSRegion  string
	AWSProfile string

	sessOnce sync.Once
	sess     *session.Session

	accountOnce sync.Once
	accountID   string
	accountErr  error

	regionOnce sync.Once
	region     string
	regionErr  error
}

func (m *CallerMetadata) createOrGetSession() *session.Session {
	m.sessOnce.Do(func() {
		m.sess = awsclicompat.NewSession(m.AWSRegion, m.AWSProfile)
	})

	return m.sess
}

// AccountID returns the AWS account ID of the caller.
func (m *CallerMetadata) AccountID(ctx context.Context) (string, error) {
	m.accountOnce.Do(func() {
		svc := sts.New(m.createOrGetSession())

		res, err := svc.GetCallerIdentityWithContext(ctx, &sts.GetCallerIdentityInput{})
		if err != nil {
			m.accountErr = errors.Wrap(err, "unable to get caller identity")
			return
		}

		m.accountID = aws.StringValue(res.Account)
	})

	return m.accountID, m.accountErr
}

// Region returns the name of the region this process runs against.
func (m *CallerMetadata) Region(ctx context.Context) (string, error) {
	m.regionOnce.Do(func() {
		sess := m.createOrGetSession()

		if r := aws.StringValue(sess.Config.Region); r != "" {
			m.region = r
			return
		}

		r, err := ec2metadata.New(sess).RegionWithContext(ctx)
		if err != nil {
			m.regionErr = errors.Wrap(err, "unable to determine region")
			return
		}

		m.region = r
	})

	return m.region, m.regionErr
}
