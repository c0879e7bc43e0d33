package azureresources

import (
	"testing"

	"github.com/aws/smithy-go/ptr"
	"github.com/stretchr/testify/assert"
)

func TestResourceID(t *testing.T) {
	assert.Equal(t,
		"/subscriptions/sub-1/resourceGroups/rg-apphost/providers/Microsoft.Cache/redis/redis-abc123",
		ResourceID("sub-1", "rg-apphost", "Microsoft.Cache/redis", "redis-abc123"),
	)
}

func TestTags(t *testing.T) {
	assert.Nil(t, toPtrTags(nil))

	tags := toPtrTags(map[string]string{NameTag: "redis"})
	assert.Equal(t, "redis", *tags[NameTag])

	back := fromPtrTags(map[string]*string{NameTag: ptr.String("redis"), "empty": nil})
	assert.Equal(t, map[string]string{NameTag: "redis", "empty": ""}, back)
}
