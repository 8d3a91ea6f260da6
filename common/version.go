package common

import "github.com/nspcc-dev/neo-go/pkg/interop/native/std"

const (
	major = 0
	minor = 2
	patch = 0

	// Oldest version an update is accepted from. Raised together with the
	// migration code handling the corresponding data layout.
	prevMajor = 0
	prevMinor = 1
	prevPatch = 0

	Version = major*1_000_000 + minor*1_000 + patch

	PrevVersion = prevMajor*1_000_000 + prevMinor*1_000 + prevPatch

	// ErrVersionMismatch is thrown by CheckVersion when the contract being
	// updated is older than PrevVersion.
	ErrVersionMismatch = "previous version mismatch"

	// ErrAlreadyUpdated is thrown by CheckVersion when the contract is
	// updated to the version it already runs.
	ErrAlreadyUpdated = "contract is already of the latest version"
)

// CheckVersion ensures the contract data being migrated comes from a
// version the current code still understands.
func CheckVersion(from int) {
	if from < PrevVersion {
		panic(ErrVersionMismatch + ": expected >=" + std.Itoa(PrevVersion, 10))
	}
	if from == Version {
		panic(ErrAlreadyUpdated + ": " + std.Itoa(Version, 10))
	}
}

// AppendVersion appends the current contract version to the list of
// deploy arguments.
func AppendVersion(data interface{}) []interface{} {
	if data == nil {
		return []interface{}{Version}
	}
	return append(data.([]interface{}), Version)
}
