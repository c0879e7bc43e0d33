package awssess

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/samsarahq/go/oops"
	"github.com/santiago-labs/apphost/lib/localstack"
)

func DefaultSession(cfgs ...*aws.Config) (*session.Session, error) {
	if localstack.UsingLocalStack() {
		cfg := aws.NewConfig()
		cfg.Endpoint = aws.String(localstack.Endpoint)
		// Localstack serves buckets on the path, not as subdomains.
		cfg.S3ForcePathStyle = aws.Bool(true)
		cfgs = append(cfgs, cfg)
	}

	sess, err := session.NewSession(cfgs...)
	if err != nil {
		return nil, oops.Wrapf(err, "new session")
	}
	return sess, nil
}
