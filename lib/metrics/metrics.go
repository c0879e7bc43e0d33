package metrics

import (
	"fmt"
	"os"
	"path"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/posthog/posthog-go"
)

type client struct {
	posthog.Client
}

var c *client

// Init starts the usage client. Metrics stay off without an API key or when
// disabled.
func Init(apiKey string, disabled bool) {
	if apiKey == "" || disabled {
		return
	}

	ph, err := posthog.NewWithConfig(
		apiKey,
		posthog.Config{
			Endpoint: "https://app.posthog.com",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "fail to init telemetry"))
		return
	}

	c = &client{ph}
}

func Close() {
	if c == nil {
		return
	}

	err := c.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "fail to close telemetry"))
	}
	c = nil
}

type Event string

const (
	EventRunCommand Event = "apphost"
	EventPublish    Event = "apphost_publish"
)

func Push(event Event, properties posthog.Properties) {
	if c == nil {
		return
	}

	if err := c.Enqueue(posthog.Capture{
		DistinctId: getDistinctId(),
		Event:      string(event),
		Properties: properties,
	}); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "fail to enqueue telemetry"))
	}
}

func RegisterCommand() {
	command := ""
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	Push(
		EventRunCommand,
		map[string]interface{}{
			"$set": map[string]interface{}{
				"command": command,
			},
		},
	)
}

// RegisterPublish records which publisher ran and how many declarations it got.
func RegisterPublish(publisher string, declarations int, err error) {
	Push(EventPublish, posthog.NewProperties().
		Set("publisher", publisher).
		Set("declarations", declarations).
		Set("success", err == nil))
}

func getDistinctId() string {
	id := uuid.NewString()

	homedir, err := os.UserHomeDir()
	if err != nil {
		return id
	}

	return distinctIdIn(path.Join(homedir, ".apphost"), id)
}

// distinctIdIn returns the id stored in dir, writing fallback there when no
// valid id exists yet.
func distinctIdIn(dir string, fallback string) string {
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return fallback
	}

	fpath := path.Join(dir, "userid")

	bs, err := os.ReadFile(fpath)
	if err != nil {
		os.WriteFile(fpath, []byte(fallback), 0644)
		return fallback
	}

	prevId, err := uuid.ParseBytes(bs)
	if err != nil {
		os.WriteFile(fpath, []byte(fallback), 0644)
		return fallback
	}

	return prevId.String()
}
