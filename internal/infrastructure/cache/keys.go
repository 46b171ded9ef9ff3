package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

const (
	JobSearchPrefix = "jobs:search:"
	JobLockPrefix   = "jobs:lock:"

	// JobGenerationKey is bumped on every listing invalidation.
	JobGenerationKey = "jobs:generation"
)

// Hash fingerprints a normalised parameter set. Field order in structs is
// fixed, so equal params always hash the same.
func Hash(params any) string {
	b, err := json.Marshal(params)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func JobSearchKey(hash string) string { return JobSearchPrefix + hash }

func JobLockKey(hash string) string { return JobLockPrefix + hash }
