package localstack

import "os"

const Endpoint = "http://localhost:4566"

func UsingLocalStack() bool {
	if os.Getenv("LOCALSTACK") != "" {
		return true
	}
	return false
}
