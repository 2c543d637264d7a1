package services

import "os"

// CredentialSource supplies the LLM API key. It is consulted once per
// extraction and never written to.
type CredentialSource interface {
	APIKey() string
}

// EnvCredentials reads the key from an environment variable at call time.
type EnvCredentials struct {
	Var string
}

func (e EnvCredentials) APIKey() string {
	return os.Getenv(e.Var)
}

// StaticCredentials returns a fixed key. Intended for tests.
type StaticCredentials string

func (s StaticCredentials) APIKey() string {
	return string(s)
}
