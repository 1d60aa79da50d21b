// Package dist handles the image-build-time side of the packaging recipe:
// fetching the upstream Dogecoin Core release archive, verifying it against
// the manifest's SHA-256 checksum, and installing the bundled executables
// into the image's install directory.
//
// The release is described by a JSONC manifest (manifest.jsonc at the
// repository root) parsed with github.com/tidwall/jsonc, the same approach
// used for other commented-JSON configuration in this codebase. The
// distribution itself is opaque — nothing here builds or modifies the
// upstream binaries, it only lays them out where the entrypoint launcher
// expects to find them.
//
// All failures are fatal with no retry: a bad download or a checksum
// mismatch must fail the image build, never produce a half-installed image.
package dist
