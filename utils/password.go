package utils

import (
	"os"

	"github.com/matthewhartstonge/argon2"
)

// hashConfig picks the argon2 profile for the runtime: the memory-constrained
// one on serverless, where the default 64 MiB cost can exceed the function's
// allotment.
func hashConfig() argon2.Config {
	if os.Getenv("VERCEL") != "" {
		return argon2.MemoryConstrainedDefaults()
	}
	return argon2.DefaultConfig()
}

func HashPassword(password string) (string, error) {
	argon := hashConfig()
	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// VerifyPassword checks a password against an encoded hash. The hash encodes
// its own parameters, so verification works even across profile changes.
func VerifyPassword(encodedHash, password string) (bool, error) {
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	if err != nil {
		return false, err
	}
	return ok, nil
}
